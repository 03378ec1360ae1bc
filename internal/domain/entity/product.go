package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo o servicio del catálogo.
// Stock es una caché de conveniencia; la fuente de verdad es el ledger de
// movimientos (ver inventory.Reconcile).
type Product struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Type      ItemType
	Unit      string
	Price     decimal.Decimal
	Cost      decimal.Decimal // custo médio ponderado
	TaxRate   decimal.Decimal
	Stock     decimal.Decimal
	MinStock  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
