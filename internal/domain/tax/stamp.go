package tax

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// StampDutyRate Imposto de Selo sobre recibos de quitação (1%).
var StampDutyRate = decimal.RequireFromString("0.01")

// StampDutyRow una fila por documento.
type StampDutyRow struct {
	InvoiceID      string
	DocumentType   entity.InvoiceType
	DocumentNumber string
	Date           time.Time
	ClientName     string
	Base           decimal.Decimal
	Tax            decimal.Decimal
}

// StampDutyReport mapa mensal del Imposto de Selo.
type StampDutyReport struct {
	Period    Period
	Rows      []StampDutyRow
	TotalBase decimal.Decimal
	TotalTax  decimal.Decimal
}

// ComputeStampDuty FR, VD y RG certificados y no anulados del mes.
func ComputeStampDuty(invoices []entity.Invoice, p Period) StampDutyReport {
	r := StampDutyReport{Period: p, Rows: make([]StampDutyRow, 0)}
	for _, inv := range CertifiedOnly(InvoicesInPeriod(invoices, p)) {
		if !inv.Type.IsCashType() {
			continue
		}
		row := StampDutyRow{
			InvoiceID:      inv.ID,
			DocumentType:   inv.Type,
			DocumentNumber: inv.Number,
			Date:           inv.EffectiveDate(),
			ClientName:     inv.ClientName,
			Base:           inv.Total,
			Tax:            inv.Total.Mul(StampDutyRate),
		}
		r.Rows = append(r.Rows, row)
		r.TotalBase = r.TotalBase.Add(row.Base)
		r.TotalTax = r.TotalTax.Add(row.Tax)
	}
	return r
}
