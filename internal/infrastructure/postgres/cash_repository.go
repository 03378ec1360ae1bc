package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var _ repository.CashRepository = (*CashRepo)(nil)

const cashMovementsTable = "cash_movements"

var cashMovementColumns = []string{
	"id", "company_id", "date", "type", "amount", "cash_register_id", "source",
	"transfer_id", "document_ref", "description", "created_by",
}

type cashRegisterRow struct {
	ID             string          `db:"id"`
	CompanyID      string          `db:"company_id"`
	Name           string          `db:"name"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
}

type cashMovementRow struct {
	ID             string          `db:"id"`
	CompanyID      string          `db:"company_id"`
	Date           time.Time       `db:"date"`
	Type           string          `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	CashRegisterID string          `db:"cash_register_id"`
	Source         string          `db:"source"`
	TransferID     *string         `db:"transfer_id"`
	DocumentRef    string          `db:"document_ref"`
	Description    string          `db:"description"`
	CreatedBy      string          `db:"created_by"`
}

// CashRepo caixas y movimientos manuales.
type CashRepo struct {
	q Querier
}

func NewCashRepository(q Querier) *CashRepo {
	return &CashRepo{q: q}
}

// ListRegisters caixas de la empresa, activas o no.
func (r *CashRepo) ListRegisters(ctx context.Context, companyID string) ([]entity.CashRegister, error) {
	var rows []cashRegisterRow
	if err := selectAll(ctx, r.q, &rows, psql.Select(
		"id", "company_id", "name", "initial_balance", "is_active", "created_at",
	).From("cash_registers").Where(sq.Eq{"company_id": companyID}).OrderBy("name")); err != nil {
		return nil, fmt.Errorf("list cash registers: %w", err)
	}
	out := make([]entity.CashRegister, 0, len(rows))
	for _, c := range rows {
		out = append(out, entity.CashRegister(c))
	}
	return out, nil
}

// CreateMovements inserta todas las pernas en un único INSERT: una
// transferencia queda completa o no queda.
func (r *CashRepo) CreateMovements(ctx context.Context, movements []entity.CashMovement) error {
	if len(movements) == 0 {
		return nil
	}
	ins := psql.Insert(cashMovementsTable).Columns(cashMovementColumns...)
	for i := range movements {
		if movements[i].ID == "" {
			movements[i].ID = uuid.New().String()
		}
		m := movements[i]
		ins = ins.Values(
			m.ID, m.CompanyID, m.Date, string(m.Type), m.Amount, m.CashRegisterID,
			string(m.Source), nullIfEmpty(m.TransferID), m.DocumentRef, m.Description, m.CreatedBy,
		)
	}
	if _, err := exec(ctx, r.q, ins); err != nil {
		return fmt.Errorf("insert cash movements: %w", err)
	}
	return nil
}

// ListMovements movimientos manuales en orden cronológico.
func (r *CashRepo) ListMovements(ctx context.Context, companyID string) ([]entity.CashMovement, error) {
	var rows []cashMovementRow
	if err := selectAll(ctx, r.q, &rows, psql.Select(cashMovementColumns...).
		From(cashMovementsTable).Where(sq.Eq{"company_id": companyID}).OrderBy("date", "id")); err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	out := make([]entity.CashMovement, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.CashMovement{
			ID:             m.ID,
			CompanyID:      m.CompanyID,
			Date:           m.Date,
			Type:           entity.CashMovementType(m.Type),
			Amount:         m.Amount,
			CashRegisterID: m.CashRegisterID,
			Source:         entity.CashSource(m.Source),
			TransferID:     deref(m.TransferID),
			DocumentRef:    m.DocumentRef,
			Description:    m.Description,
			CreatedBy:      m.CreatedBy,
		})
	}
	return out, nil
}
