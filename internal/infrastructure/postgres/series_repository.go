package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var _ repository.SeriesRepository = (*SeriesRepo)(nil)

const seriesTable = "document_series"

type seriesRow struct {
	ID              string    `db:"id"`
	CompanyID       string    `db:"company_id"`
	Code            string    `db:"code"`
	Type            string    `db:"type"`
	Year            int       `db:"year"`
	CurrentSequence int       `db:"current_sequence"`
	LastHash        string    `db:"last_hash"`
	AllowedUserIDs  []string  `db:"allowed_user_ids"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// SeriesRepo séries de numeración. Dentro de la transacción de certificación
// la fila queda bloqueada hasta el commit.
type SeriesRepo struct {
	q Querier
}

// NewSeriesRepository pool o tx.
func NewSeriesRepository(q Querier) *SeriesRepo {
	return &SeriesRepo{q: q}
}

// GetByIDForUpdate carga la série con SELECT ... FOR UPDATE.
func (r *SeriesRepo) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.DocumentSeries, error) {
	var row seriesRow
	found, err := getOne(ctx, r.q, &row, psql.Select(
		"id", "company_id", "code", "type", "year", "current_sequence", "last_hash",
		"allowed_user_ids", "is_active", "created_at", "updated_at",
	).From(seriesTable).
		Where(sq.Eq{"id": id, "company_id": companyID}).
		Suffix("FOR UPDATE"))
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &entity.DocumentSeries{
		ID:              row.ID,
		CompanyID:       row.CompanyID,
		Code:            row.Code,
		Type:            entity.SeriesType(row.Type),
		Year:            row.Year,
		CurrentSequence: row.CurrentSequence,
		LastHash:        row.LastHash,
		AllowedUserIDs:  row.AllowedUserIDs,
		IsActive:        row.IsActive,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

// UpdateSequence guarda el contador y el último hash. La secuencia nunca
// retrocede: el WHERE descarta escrituras con un valor menor.
func (r *SeriesRepo) UpdateSequence(ctx context.Context, s *entity.DocumentSeries) error {
	s.UpdatedAt = time.Now().UTC()
	cmd, err := exec(ctx, r.q, psql.Update(seriesTable).
		Set("current_sequence", s.CurrentSequence).
		Set("last_hash", s.LastHash).
		Set("updated_at", s.UpdatedAt).
		Where(sq.Eq{"id": s.ID, "company_id": s.CompanyID}).
		Where(sq.LtOrEq{"current_sequence": s.CurrentSequence}))
	if err != nil {
		return fmt.Errorf("update series sequence: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("series %s: %w", s.Code, domain.ErrConflict)
	}
	return nil
}
