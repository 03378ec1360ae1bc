package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// StockMovementRepository persiste los ajustes manuales de stock (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	List(ctx context.Context, companyID string) ([]entity.StockMovement, error)
}
