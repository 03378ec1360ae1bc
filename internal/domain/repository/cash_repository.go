package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// CashRepository caixas y movimientos manuales (append-only).
type CashRepository interface {
	ListRegisters(ctx context.Context, companyID string) ([]entity.CashRegister, error)
	// CreateMovements inserta todas las pernas en una sola sentencia.
	CreateMovements(ctx context.Context, movements []entity.CashMovement) error
	ListMovements(ctx context.Context, companyID string) ([]entity.CashMovement, error)
}
