package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productRow struct {
	ID        string          `db:"id"`
	CompanyID string          `db:"company_id"`
	Code      string          `db:"code"`
	Name      string          `db:"name"`
	Type      string          `db:"type"`
	Unit      string          `db:"unit"`
	Price     decimal.Decimal `db:"price"`
	Cost      decimal.Decimal `db:"cost"`
	TaxRate   decimal.Decimal `db:"tax_rate"`
	Stock     decimal.Decimal `db:"stock"`
	MinStock  decimal.Decimal `db:"min_stock"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// ListByCompany catálogo completo ordenado por código.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.Product, error) {
	var rows []productRow
	if err := selectAll(ctx, r.q, &rows, psql.Select(
		"id", "company_id", "code", "name", "type", "unit", "price", "cost",
		"tax_rate", "stock", "min_stock", "created_at", "updated_at",
	).From("products").Where(sq.Eq{"company_id": companyID}).OrderBy("code")); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]entity.Product, 0, len(rows))
	for _, p := range rows {
		out = append(out, entity.Product{
			ID:        p.ID,
			CompanyID: p.CompanyID,
			Code:      p.Code,
			Name:      p.Name,
			Type:      entity.ItemType(p.Type),
			Unit:      p.Unit,
			Price:     p.Price,
			Cost:      p.Cost,
			TaxRate:   p.TaxRate,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return out, nil
}

// UpdateStockCache reescribe la columna stock con el saldo del ledger.
func (r *ProductRepo) UpdateStockCache(ctx context.Context, productID string, stock decimal.Decimal) error {
	cmd, err := exec(ctx, r.q, psql.Update("products").
		Set("stock", stock).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": productID}))
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
