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

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

type salarySlipRow struct {
	ID             string          `db:"id"`
	CompanyID      string          `db:"company_id"`
	EmployeeID     string          `db:"employee_id"`
	EmployeeName   string          `db:"employee_name"`
	Year           int             `db:"year"`
	Month          int             `db:"month"`
	BaseSalary     decimal.Decimal `db:"base_salary"`
	Allowances     decimal.Decimal `db:"allowances"`
	GrossTotal     decimal.Decimal `db:"gross_total"`
	SocialSecurity decimal.Decimal `db:"social_security"`
	IRT            decimal.Decimal `db:"irt"`
	NetTotal       decimal.Decimal `db:"net_total"`
	CreatedAt      time.Time       `db:"created_at"`
}

// PayrollRepo recibos de salario.
type PayrollRepo struct {
	q Querier
}

func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

// ListByYears recibos de los ejercicios [fromYear, toYear].
func (r *PayrollRepo) ListByYears(ctx context.Context, companyID string, fromYear, toYear int) ([]entity.SalarySlip, error) {
	var rows []salarySlipRow
	if err := selectAll(ctx, r.q, &rows, psql.Select(
		"id", "company_id", "employee_id", "employee_name", "year", "month",
		"base_salary", "allowances", "gross_total", "social_security", "irt",
		"net_total", "created_at",
	).From("salary_slips").
		Where(sq.Eq{"company_id": companyID}).
		Where(sq.GtOrEq{"year": fromYear}).
		Where(sq.LtOrEq{"year": toYear}).
		OrderBy("year", "month", "employee_name")); err != nil {
		return nil, fmt.Errorf("list salary slips: %w", err)
	}
	out := make([]entity.SalarySlip, 0, len(rows))
	for _, s := range rows {
		out = append(out, entity.SalarySlip(s))
	}
	return out, nil
}
