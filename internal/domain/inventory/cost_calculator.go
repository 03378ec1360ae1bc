package inventory

import "github.com/shopspring/decimal"

// CostCalculator custo médio ponderado tras una entrada de compra.
// NovoCusto = ((StockActual * CustoActual) + (QtdEntrada * CustoEntrada)) / (StockActual + QtdEntrada)
// Un stock actual negativo (venda a descoberto) no pondera.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual.IsNegative() {
		stockActual = decimal.Zero
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
