package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// PartyRepository clientes/proveedores y su conta corrente.
type PartyRepository interface {
	// GetByID carga la entidad con sus transacciones.
	GetByID(ctx context.Context, companyID, id string) (*entity.Party, error)
	AppendTransactions(ctx context.Context, txs []entity.AccountTransaction) error
	// UpdateBalance guarda el saldo derivado.
	UpdateBalance(ctx context.Context, partyID string, balance decimal.Decimal) error
}
