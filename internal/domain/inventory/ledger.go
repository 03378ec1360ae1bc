// Package inventory: ledger de stock. El saldo de un producto es siempre un
// fold de sus movimientos; Product.Stock es sólo una caché.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// LedgerInput documentos y ajustes a reproducir.
type LedgerInput struct {
	Invoices    []entity.Invoice
	Purchases   []entity.Purchase
	Adjustments []entity.StockMovement
}

// StockBalance saldo derivado de un producto.
type StockBalance struct {
	ProductID   string
	Entries     decimal.Decimal
	Exits       decimal.Decimal
	Balance     decimal.Decimal
	ByWarehouse map[string]decimal.Decimal
	AverageCost decimal.Decimal
	Value       decimal.Decimal // Balance × AverageCost (cero si el saldo no es positivo)
	Negative    bool            // alerta: vendido a descoberto
}

// Ledger resultado de la reproducción.
type Ledger struct {
	Movements []entity.StockMovement
	Balances  []StockBalance // ordenados por ProductID
	Alerts    []StockBalance
}

// Balance saldo de un producto (ok=false si no tiene movimientos).
func (l Ledger) Balance(productID string) (StockBalance, bool) {
	i := sort.Search(len(l.Balances), func(i int) bool { return l.Balances[i].ProductID >= productID })
	if i < len(l.Balances) && l.Balances[i].ProductID == productID {
		return l.Balances[i], true
	}
	return StockBalance{}, false
}

// DeriveMovements convierte documentos en movimientos: documentos de venta
// certificados y no anulados (salida, o entrada si es nota de crédito),
// compras no anuladas (entrada) y los ajustes manuales. Orden estable por fecha.
func DeriveMovements(in LedgerInput) []entity.StockMovement {
	var out []entity.StockMovement
	for _, inv := range in.Invoices {
		if !inv.IsCertified || inv.IsCancelled() {
			continue
		}
		mt, ok := inv.Type.StockEffect()
		if !ok {
			continue
		}
		for _, it := range inv.Items {
			if it.ProductID == "" || it.Type == entity.ItemTypeService {
				continue
			}
			out = append(out, entity.StockMovement{
				CompanyID:   inv.CompanyID,
				Date:        inv.Date,
				Type:        mt,
				ProductID:   it.ProductID,
				WarehouseID: it.WarehouseID,
				Quantity:    it.Quantity,
				DocumentRef: inv.Number,
			})
		}
	}
	for _, pu := range in.Purchases {
		if pu.Status == entity.PurchaseStatusCancelled {
			continue
		}
		for _, it := range pu.Items {
			if it.ProductID == "" || it.Type == entity.ItemTypeService {
				continue
			}
			out = append(out, entity.StockMovement{
				CompanyID:   pu.CompanyID,
				Date:        pu.Date,
				Type:        entity.StockMovementEntry,
				ProductID:   it.ProductID,
				WarehouseID: it.WarehouseID,
				Quantity:    it.Quantity,
				UnitCost:    it.UnitPrice.Mul(decimal.NewFromInt(1).Sub(it.Discount.Shift(-2))),
				DocumentRef: pu.Number,
			})
		}
	}
	out = append(out, in.Adjustments...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Replay saldo por producto: Σ entradas − Σ salidas, sin suelo en cero.
func Replay(movements []entity.StockMovement) []StockBalance {
	byProduct := make(map[string]*StockBalance)
	for _, m := range movements {
		b, ok := byProduct[m.ProductID]
		if !ok {
			b = &StockBalance{ProductID: m.ProductID, ByWarehouse: map[string]decimal.Decimal{}}
			byProduct[m.ProductID] = b
		}
		if m.Type == entity.StockMovementEntry && m.UnitCost.IsPositive() {
			b.AverageCost = CostCalculator(b.Balance, b.AverageCost, m.Quantity, m.UnitCost)
		}
		switch m.Type {
		case entity.StockMovementEntry:
			b.Entries = b.Entries.Add(m.Quantity)
		case entity.StockMovementExit:
			b.Exits = b.Exits.Add(m.Quantity)
		}
		b.Balance = b.Balance.Add(m.Signed())
		b.ByWarehouse[m.WarehouseID] = b.ByWarehouse[m.WarehouseID].Add(m.Signed())
	}

	out := make([]StockBalance, 0, len(byProduct))
	for _, b := range byProduct {
		b.Negative = b.Balance.IsNegative()
		if b.Balance.IsPositive() {
			b.Value = b.Balance.Mul(b.AverageCost)
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Build deriva movimientos y saldos, y separa las alertas de saldo negativo.
func Build(in LedgerInput) Ledger {
	movs := DeriveMovements(in)
	balances := Replay(movs)
	l := Ledger{Movements: movs, Balances: balances}
	for _, b := range balances {
		if b.Negative {
			l.Alerts = append(l.Alerts, b)
		}
	}
	return l
}

// Drift diferencia entre la caché Product.Stock y el ledger.
type Drift struct {
	ProductID string
	Cached    decimal.Decimal
	Ledger    decimal.Decimal
}

// Reconcile productos cuya caché no coincide con el ledger. Los productos
// sin movimientos deben tener stock cero.
func Reconcile(products []entity.Product, l Ledger) []Drift {
	var out []Drift
	for _, p := range products {
		if p.Type == entity.ItemTypeService {
			continue
		}
		b, _ := l.Balance(p.ID)
		if !p.Stock.Equal(b.Balance) {
			out = append(out, Drift{ProductID: p.ID, Cached: p.Stock, Ledger: b.Balance})
		}
	}
	return out
}
