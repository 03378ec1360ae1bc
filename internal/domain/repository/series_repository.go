package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// SeriesRepository puerto de persistencia para DocumentSeries.
type SeriesRepository interface {
	// GetByIDForUpdate bloquea la fila dentro de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.DocumentSeries, error)
	// UpdateSequence guarda CurrentSequence y LastHash.
	UpdateSequence(ctx context.Context, series *entity.DocumentSeries) error
}
