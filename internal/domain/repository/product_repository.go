package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// ProductRepository catálogo y caché de stock.
type ProductRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]entity.Product, error)
	// UpdateStockCache reescribe Product.Stock con el valor del ledger.
	UpdateStockCache(ctx context.Context, productID string, stock decimal.Decimal) error
}
