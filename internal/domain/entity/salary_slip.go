package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalarySlip recibo de salario; el Modelo 1 sólo consume GrossTotal.
type SalarySlip struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	EmployeeName   string
	Year           int
	Month          int
	BaseSalary     decimal.Decimal
	Allowances     decimal.Decimal
	GrossTotal     decimal.Decimal
	SocialSecurity decimal.Decimal // 3% a cargo del trabajador
	IRT            decimal.Decimal
	NetTotal       decimal.Decimal
	CreatedAt      time.Time
}
