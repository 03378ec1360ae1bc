package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
)

// OverrideRepository valores manuales del Modelo 1 por empresa y ejercicio.
type OverrideRepository interface {
	Get(ctx context.Context, companyID string, year int) (tax.Overrides, error)
	// Replace sustituye el conjunto completo: las claves ausentes se eliminan.
	Replace(ctx context.Context, companyID string, year int, overrides tax.Overrides) error
}
