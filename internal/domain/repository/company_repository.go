package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// CompanyRepository lectura de la empresa emisora.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
