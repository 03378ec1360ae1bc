package dto

import "github.com/shopspring/decimal"

// RegisterBalanceDTO saldo de una caixa.
type RegisterBalanceDTO struct {
	CashRegisterID string          `json:"cash_register_id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Inflows        decimal.Decimal `json:"inflows"`
	Outflows       decimal.Decimal `json:"outflows"`
	Balance        decimal.Decimal `json:"balance"`
}

// PairingIssueDTO perna de transferencia huérfana o descuadrada.
type PairingIssueDTO struct {
	TransferID string `json:"transfer_id"`
	Reason     string `json:"reason"`
}

// CashRegistersResponse GET /api/cash/registers.
type CashRegistersResponse struct {
	Registers []RegisterBalanceDTO `json:"registers"`
	Issues    []PairingIssueDTO    `json:"issues,omitempty"`
}

// CashMovementRequest POST /api/cash/movements.
type CashMovementRequest struct {
	CashRegisterID string          `json:"cash_register_id" validate:"required"`
	Type           string          `json:"type" validate:"required,oneof=ENTRY EXIT"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	Description    string          `json:"description,omitempty"`
}

// CashTransferRequest POST /api/cash/transfers.
type CashTransferRequest struct {
	FromRegisterID string          `json:"from_register_id" validate:"required"`
	ToRegisterID   string          `json:"to_register_id" validate:"required,nefield=FromRegisterID"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	Description    string          `json:"description,omitempty"`
}

// CashMovementResponse movimiento creado.
type CashMovementResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	CashRegisterID string          `json:"cash_register_id"`
	TransferID     string          `json:"transfer_id,omitempty"`
	Date           string          `json:"date"`
}
