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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockAdjustmentsTable = "stock_adjustments"

type stockMovementRow struct {
	ID          string          `db:"id"`
	CompanyID   string          `db:"company_id"`
	Date        time.Time       `db:"date"`
	Type        string          `db:"type"`
	ProductID   string          `db:"product_id"`
	WarehouseID string          `db:"warehouse_id"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitCost    decimal.Decimal `db:"unit_cost"`
	DocumentRef string          `db:"document_ref"`
	Notes       string          `db:"notes"`
	CreatedBy   string          `db:"created_by"`
}

// StockMovementRepo ajustes manuales de stock. Las entradas y saídas de
// documentos no se guardan: se derivan de compras y vendas.
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el ajuste.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if _, err := exec(ctx, r.q, psql.Insert(stockAdjustmentsTable).Columns(
		"id", "company_id", "date", "type", "product_id", "warehouse_id",
		"quantity", "unit_cost", "document_ref", "notes", "created_by",
	).Values(
		m.ID, m.CompanyID, m.Date, string(m.Type), m.ProductID, m.WarehouseID,
		m.Quantity, m.UnitCost, m.DocumentRef, m.Notes, m.CreatedBy,
	)); err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// List ajustes de la empresa en orden cronológico.
func (r *StockMovementRepo) List(ctx context.Context, companyID string) ([]entity.StockMovement, error) {
	var rows []stockMovementRow
	if err := selectAll(ctx, r.q, &rows, psql.Select(
		"id", "company_id", "date", "type", "product_id", "warehouse_id",
		"quantity", "unit_cost", "document_ref", "notes", "created_by",
	).From(stockAdjustmentsTable).Where(sq.Eq{"company_id": companyID}).OrderBy("date", "id")); err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	out := make([]entity.StockMovement, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.StockMovement{
			ID:          m.ID,
			CompanyID:   m.CompanyID,
			Date:        m.Date,
			Type:        entity.StockMovementType(m.Type),
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
			DocumentRef: m.DocumentRef,
			Notes:       m.Notes,
			CreatedBy:   m.CreatedBy,
		})
	}
	return out, nil
}
