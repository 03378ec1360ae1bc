package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseType tipo de documento del proveedor.
type PurchaseType string

const (
	PurchaseTypeFT PurchaseType = "FT" // Fatura
	PurchaseTypeFR PurchaseType = "FR" // Fatura-Recibo
	PurchaseTypeVD PurchaseType = "VD" // Venda a Dinheiro
	PurchaseTypeRC PurchaseType = "RC" // Recibo (serviços de terceiros)
)

// AllPurchaseTypes enumeración completa.
var AllPurchaseTypes = []PurchaseType{PurchaseTypeFT, PurchaseTypeFR, PurchaseTypeVD, PurchaseTypeRC}

// Valid indica si el tipo pertenece a la enumeración.
func (t PurchaseType) Valid() bool {
	switch t {
	case PurchaseTypeFT, PurchaseTypeFR, PurchaseTypeVD, PurchaseTypeRC:
		return true
	default:
		return false
	}
}

// IsReceipt los recibos alimentan FSE (75) y no CMVMC (71).
func (t PurchaseType) IsReceipt() bool {
	switch t {
	case PurchaseTypeRC:
		return true
	case PurchaseTypeFT, PurchaseTypeFR, PurchaseTypeVD:
		return false
	default:
		return false
	}
}

// PurchaseStatus estado del documento de compra.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusPaid      PurchaseStatus = "PAID"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// PurchaseItem línea de compra; WarehouseID decide dónde entra el stock.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ProductID   string
	WarehouseID string
	Description string
	Type        ItemType
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TaxRate     decimal.Decimal
	Total       decimal.Decimal
}

// Purchase documento de compra recibido de un proveedor.
type Purchase struct {
	ID             string
	CompanyID      string
	Type           PurchaseType
	Number         string // número del documento del proveedor
	Date           time.Time
	SupplierID     string
	SupplierNIF    string
	SupplierName   string
	Items          []PurchaseItem
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Status         PurchaseStatus
	PaymentMethod  string
	CashRegisterID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
