package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// PurchaseRepository puerto de lectura de compras.
type PurchaseRepository interface {
	List(ctx context.Context, companyID string, f DocumentFilter) ([]entity.Purchase, error)
}
