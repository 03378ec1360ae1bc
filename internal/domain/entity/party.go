package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyKind distingue clientes de proveedores (misma forma de conta corrente).
type PartyKind string

const (
	PartyClient   PartyKind = "CLIENT"
	PartySupplier PartyKind = "SUPPLIER"
)

// TransactionType sentido del lançamento en la conta corrente.
type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

// AccountTransaction entrada append-only de la conta corrente.
type AccountTransaction struct {
	ID          string
	PartyID     string
	Date        time.Time
	Type        TransactionType
	Amount      decimal.Decimal
	DocumentRef string
	Description string
}

// Party cliente o proveedor. AccountBalance es un valor derivado de
// InitialBalance y Transactions.
type Party struct {
	ID             string
	CompanyID      string
	Kind           PartyKind
	Name           string
	NIF            string
	Address        string
	Email          string
	Phone          string
	InitialBalance decimal.Decimal
	AccountBalance decimal.Decimal
	Transactions   []AccountTransaction
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
