package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

type purchaseRow struct {
	ID             string          `db:"id"`
	CompanyID      string          `db:"company_id"`
	Type           string          `db:"type"`
	Number         string          `db:"number"`
	Date           time.Time       `db:"date"`
	SupplierID     *string         `db:"supplier_id"`
	SupplierNIF    string          `db:"supplier_nif"`
	SupplierName   string          `db:"supplier_name"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	Total          decimal.Decimal `db:"total"`
	Status         string          `db:"status"`
	PaymentMethod  string          `db:"payment_method"`
	CashRegisterID *string         `db:"cash_register_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type purchaseItemRow struct {
	ID          string          `db:"id"`
	PurchaseID  string          `db:"purchase_id"`
	ProductID   *string         `db:"product_id"`
	WarehouseID *string         `db:"warehouse_id"`
	Description string          `db:"description"`
	Type        string          `db:"type"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Discount    decimal.Decimal `db:"discount"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	Total       decimal.Decimal `db:"total"`
}

// PurchaseRepo lectura de compras con sus líneas.
type PurchaseRepo struct {
	q Querier
}

func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// List compras de la empresa en la ventana (por fecha del documento).
func (r *PurchaseRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]entity.Purchase, error) {
	b := psql.Select(
		"id", "company_id", "type", "number", "date", "supplier_id", "supplier_nif",
		"supplier_name", "subtotal", "tax_amount", "total", "status", "payment_method",
		"cash_register_id", "created_at", "updated_at",
	).From("purchases").Where(sq.Eq{"company_id": companyID}).OrderBy("date", "created_at")
	b = dateWindow(b, "date", f)

	var rows []purchaseRow
	if err := selectAll(ctx, r.q, &rows, b); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	var itemRows []purchaseItemRow
	if err := selectAll(ctx, r.q, &itemRows, psql.Select(
		"id", "purchase_id", "product_id", "warehouse_id", "description", "type",
		"quantity", "unit_price", "discount", "tax_rate", "total",
	).From("purchase_items").Where(sq.Eq{"purchase_id": ids}).OrderBy("purchase_id", "position")); err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	items := make(map[string][]entity.PurchaseItem, len(rows))
	for _, it := range itemRows {
		items[it.PurchaseID] = append(items[it.PurchaseID], entity.PurchaseItem{
			ID:          it.ID,
			PurchaseID:  it.PurchaseID,
			ProductID:   deref(it.ProductID),
			WarehouseID: deref(it.WarehouseID),
			Description: it.Description,
			Type:        entity.ItemType(it.Type),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			TaxRate:     it.TaxRate,
			Total:       it.Total,
		})
	}

	out := make([]entity.Purchase, 0, len(rows))
	for _, p := range rows {
		out = append(out, entity.Purchase{
			ID:             p.ID,
			CompanyID:      p.CompanyID,
			Type:           entity.PurchaseType(p.Type),
			Number:         p.Number,
			Date:           p.Date,
			SupplierID:     deref(p.SupplierID),
			SupplierNIF:    p.SupplierNIF,
			SupplierName:   p.SupplierName,
			Items:          items[p.ID],
			Subtotal:       p.Subtotal,
			TaxAmount:      p.TaxAmount,
			Total:          p.Total,
			Status:         entity.PurchaseStatus(p.Status),
			PaymentMethod:  p.PaymentMethod,
			CashRegisterID: deref(p.CashRegisterID),
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		})
	}
	return out, nil
}
