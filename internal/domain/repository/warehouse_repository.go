package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// WarehouseRepository lectura de armazéns.
type WarehouseRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]entity.Warehouse, error)
}
