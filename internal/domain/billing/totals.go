// Package billing: motor de totales de documentos y ciclo de vida fiscal
// (certificação, numeração por série, hash encadeado, anulação).
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// Retenção na fonte sobre serviços. Constantes legales: no se configuran.
var (
	WithholdingRate      = decimal.RequireFromString("6.5")
	WithholdingThreshold = decimal.NewFromInt(20000)
)

var one = decimal.NewFromInt(1)

// Totals campos derivados de un documento de venta.
type Totals struct {
	LineTotals          []decimal.Decimal // mismo orden que Items
	Subtotal            decimal.Decimal
	TaxAmount           decimal.Decimal
	GlobalDiscountValue decimal.Decimal
	WithholdingEnabled  bool
	WithholdingAmount   decimal.Decimal
	RetentionAmount     decimal.Decimal
	Total               decimal.Decimal
	ContraValue         decimal.Decimal
}

// LineTotal quantidade × dimensões × preço × (1 − desconto/100).
func LineTotal(qty, length, width, height, unitPrice, discount decimal.Decimal) decimal.Decimal {
	return qty.
		Mul(dimension(length)).
		Mul(dimension(width)).
		Mul(dimension(height)).
		Mul(unitPrice).
		Mul(one.Sub(percent(discount)))
}

// LineTax imposto de la línea.
func LineTax(lineTotal, taxRate decimal.Decimal) decimal.Decimal {
	return lineTotal.Mul(percent(taxRate))
}

// Recompute calcula los derivados del documento sin modificarlo.
// Con el documento certificado la retenção queda congelada en el valor
// guardado en WithholdingEnabled.
func Recompute(inv *entity.Invoice) Totals {
	t := Totals{LineTotals: make([]decimal.Decimal, len(inv.Items))}
	hasService := false
	for i, it := range inv.Items {
		lt := LineTotal(it.Quantity, it.Length, it.Width, it.Height, it.UnitPrice, it.Discount)
		t.LineTotals[i] = lt
		t.Subtotal = t.Subtotal.Add(lt)
		t.TaxAmount = t.TaxAmount.Add(LineTax(lt, it.TaxRate))
		if it.Type == entity.ItemTypeService {
			hasService = true
		}
	}
	t.GlobalDiscountValue = t.Subtotal.Mul(percent(inv.GlobalDiscount))

	if inv.IsCertified {
		t.WithholdingEnabled = inv.WithholdingEnabled
	} else {
		t.WithholdingEnabled = hasService && t.Subtotal.GreaterThan(WithholdingThreshold)
	}
	if t.WithholdingEnabled {
		t.WithholdingAmount = t.Subtotal.Mul(percent(WithholdingRate))
	}

	t.RetentionAmount = t.TaxAmount.Mul(inv.RetentionType.Factor())
	t.Total = t.Subtotal.
		Add(t.TaxAmount).
		Sub(t.GlobalDiscountValue).
		Sub(t.WithholdingAmount).
		Sub(t.RetentionAmount)

	rate := inv.ExchangeRate
	if rate.IsZero() {
		rate = one
	}
	t.ContraValue = t.Total.Mul(rate)
	return t
}

// Apply vuelca los derivados sobre el documento.
func Apply(inv *entity.Invoice, t Totals) {
	for i := range inv.Items {
		if i < len(t.LineTotals) {
			inv.Items[i].Total = t.LineTotals[i]
		}
	}
	inv.Subtotal = t.Subtotal
	inv.TaxAmount = t.TaxAmount
	inv.GlobalDiscountValue = t.GlobalDiscountValue
	inv.WithholdingEnabled = t.WithholdingEnabled
	inv.WithholdingAmount = t.WithholdingAmount
	inv.RetentionAmount = t.RetentionAmount
	inv.Total = t.Total
	inv.ContraValue = t.ContraValue
}

// PurchaseTotals derivados de un documento de compra (sin retenção).
type PurchaseTotals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
}

// RecomputePurchase aplica el mismo motor de línea a una compra.
func RecomputePurchase(p *entity.Purchase) PurchaseTotals {
	t := PurchaseTotals{LineTotals: make([]decimal.Decimal, len(p.Items))}
	for i, it := range p.Items {
		lt := LineTotal(it.Quantity, one, one, one, it.UnitPrice, it.Discount)
		t.LineTotals[i] = lt
		t.Subtotal = t.Subtotal.Add(lt)
		t.TaxAmount = t.TaxAmount.Add(LineTax(lt, it.TaxRate))
	}
	t.Total = t.Subtotal.Add(t.TaxAmount)
	return t
}

// ApplyPurchase vuelca los derivados sobre la compra.
func ApplyPurchase(p *entity.Purchase, t PurchaseTotals) {
	for i := range p.Items {
		if i < len(t.LineTotals) {
			p.Items[i].Total = t.LineTotals[i]
		}
	}
	p.Subtotal = t.Subtotal
	p.TaxAmount = t.TaxAmount
	p.Total = t.Total
}

// percent convierte un porcentaje en fracción sin pérdida (desplazamiento decimal).
func percent(p decimal.Decimal) decimal.Decimal {
	return p.Shift(-2)
}

func dimension(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return one
	}
	return d
}
