package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
)

var _ repository.OverrideRepository = (*OverrideRepo)(nil)

const overridesTable = "modelo1_overrides"

type overrideRow struct {
	Code  string          `db:"code"`
	Value decimal.Decimal `db:"value"`
}

// OverrideRepo valores manuales del Modelo 1, una fila por código de linha.
type OverrideRepo struct {
	q Querier
}

func NewOverrideRepository(q Querier) *OverrideRepo {
	return &OverrideRepo{q: q}
}

// Get overrides del ejercicio. Mapa vacío si no hay ninguno.
func (r *OverrideRepo) Get(ctx context.Context, companyID string, year int) (tax.Overrides, error) {
	var rows []overrideRow
	if err := selectAll(ctx, r.q, &rows, psql.Select("code", "value").From(overridesTable).
		Where(sq.Eq{"company_id": companyID, "year": year})); err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	out := make(tax.Overrides, len(rows))
	for _, o := range rows {
		out[o.Code] = o.Value
	}
	return out, nil
}

// Replace borra y vuelve a insertar el conjunto del ejercicio dentro de una
// transacción (o savepoint, si q ya es una tx).
func (r *OverrideRepo) Replace(ctx context.Context, companyID string, year int, overrides tax.Overrides) error {
	b, ok := r.q.(beginner)
	if !ok {
		return fmt.Errorf("replace overrides: el querier no admite transacciones")
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := exec(ctx, tx, psql.Delete(overridesTable).
		Where(sq.Eq{"company_id": companyID, "year": year})); err != nil {
		return fmt.Errorf("delete overrides: %w", err)
	}
	if len(overrides) > 0 {
		ins := psql.Insert(overridesTable).Columns("company_id", "year", "code", "value")
		for code, v := range overrides {
			ins = ins.Values(companyID, year, code, v)
		}
		if _, err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert overrides: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
