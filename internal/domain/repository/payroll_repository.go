package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// PayrollRepository puerto de lectura de recibos de salario.
type PayrollRepository interface {
	ListByYears(ctx context.Context, companyID string, fromYear, toYear int) ([]entity.SalarySlip, error)
}
