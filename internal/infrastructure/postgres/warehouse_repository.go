package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para armazéns.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// ListByCompany armazéns de la empresa por nombre.
func (r *WarehouseRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.Warehouse, error) {
	// Sin struct intermedio: scany mapea CompanyID -> company_id.
	var list []entity.Warehouse
	if err := selectAll(ctx, r.q, &list, psql.Select(
		"id", "company_id", "name", "address", "closed", "created_at",
	).From("warehouses").Where(sq.Eq{"company_id": companyID}).OrderBy("name")); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return list, nil
}
