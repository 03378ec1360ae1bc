package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementType dirección del movimiento.
type StockMovementType string

const (
	StockMovementEntry StockMovementType = "ENTRY"
	StockMovementExit  StockMovementType = "EXIT"
)

// StockMovement movimiento de inventario (append-only). Los que nacen de
// documentos se derivan en memoria; sólo los ajustes manuales se persisten.
type StockMovement struct {
	ID          string
	CompanyID   string
	Date        time.Time
	Type        StockMovementType
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal // siempre positivo; el signo lo da Type
	UnitCost    decimal.Decimal // sólo entradas de compra
	DocumentRef string
	Notes       string
	CreatedBy   string
}

// Signed cantidad con signo según el tipo.
func (m StockMovement) Signed() decimal.Decimal {
	if m.Type == StockMovementExit {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
