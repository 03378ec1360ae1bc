package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashMovementType tipo de movimiento de caja.
type CashMovementType string

const (
	CashEntry       CashMovementType = "ENTRY"
	CashExit        CashMovementType = "EXIT"
	CashTransferIn  CashMovementType = "TRANSFER_IN"
	CashTransferOut CashMovementType = "TRANSFER_OUT"
)

// IsInflow ENTRY y TRANSFER_IN suman al saldo.
func (t CashMovementType) IsInflow() bool {
	return t == CashEntry || t == CashTransferIn
}

// CashSource origen del movimiento.
type CashSource string

const (
	CashSourceSales     CashSource = "SALES"
	CashSourcePurchases CashSource = "PURCHASES"
	CashSourceManual    CashSource = "MANUAL"
)

// CashRegister caixa o conta bancária.
type CashRegister struct {
	ID             string
	CompanyID      string
	Name           string
	InitialBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
}

// CashMovement movimiento append-only. TransferID agrupa las dos pernas de
// una transferencia.
type CashMovement struct {
	ID             string
	CompanyID      string
	Date           time.Time
	Type           CashMovementType
	Amount         decimal.Decimal
	CashRegisterID string
	Source         CashSource
	TransferID     string
	DocumentRef    string
	Description    string
	CreatedBy      string
}
