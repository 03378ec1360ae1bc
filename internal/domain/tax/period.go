// Package tax: declaraciones fiscales angoleñas derivadas de los documentos
// (IVA Modelo 7, Imposto Industrial Modelo 1, Imposto de Selo, totales de
// control SAF-T). Todas las funciones son puras: reciben instantáneas en
// memoria y nunca modifican su entrada.
package tax

import (
	"fmt"
	"time"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// Period ventana año/mes. Month == 0 significa el año completo.
type Period struct {
	Year  int
	Month time.Month
}

// YearPeriod período de año completo.
func YearPeriod(year int) Period { return Period{Year: year} }

// MonthPeriod período mensual.
func MonthPeriod(year int, month time.Month) Period { return Period{Year: year, Month: month} }

// Contains indica si la fecha cae en la ventana.
func (p Period) Contains(t time.Time) bool {
	if t.Year() != p.Year {
		return false
	}
	return p.Month == 0 || t.Month() == p.Month
}

// Start primer instante del período.
func (p Period) Start() time.Time {
	m := p.Month
	if m == 0 {
		m = time.January
	}
	return time.Date(p.Year, m, 1, 0, 0, 0, 0, time.UTC)
}

// End último día del período.
func (p Period) End() time.Time {
	if p.Month == 0 {
		return time.Date(p.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return p.Start().AddDate(0, 1, -1)
}

// Previous mismo período un año antes (columna comparativa).
func (p Period) Previous() Period { return Period{Year: p.Year - 1, Month: p.Month} }

func (p Period) String() string {
	if p.Month == 0 {
		return fmt.Sprintf("%04d", p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// InvoicesInPeriod documentos cuya fecha contable (o de emisión) cae en el
// período y que no están anulados. Conserva el orden de entrada.
func InvoicesInPeriod(invoices []entity.Invoice, p Period) []entity.Invoice {
	out := make([]entity.Invoice, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if inv.IsCancelled() || !p.Contains(inv.EffectiveDate()) {
			continue
		}
		out = append(out, *inv)
	}
	return out
}

// CancelledInPeriod documentos anulados cuya fecha contable cae en el período.
func CancelledInPeriod(invoices []entity.Invoice, p Period) []entity.Invoice {
	out := make([]entity.Invoice, 0)
	for i := range invoices {
		inv := &invoices[i]
		if inv.IsCancelled() && p.Contains(inv.EffectiveDate()) {
			out = append(out, *inv)
		}
	}
	return out
}

// CertifiedOnly descarta borradores.
func CertifiedOnly(invoices []entity.Invoice) []entity.Invoice {
	out := make([]entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.IsCertified {
			out = append(out, inv)
		}
	}
	return out
}

// PurchasesInPeriod compras confirmadas (ni pendientes ni anuladas) con fecha
// en el período: base de la dedução de IVA.
func PurchasesInPeriod(purchases []entity.Purchase, p Period) []entity.Purchase {
	out := make([]entity.Purchase, 0, len(purchases))
	for _, pu := range purchases {
		if pu.Status == entity.PurchaseStatusPending || pu.Status == entity.PurchaseStatusCancelled {
			continue
		}
		if p.Contains(pu.Date) {
			out = append(out, pu)
		}
	}
	return out
}

// AccruedPurchasesInPeriod todas las compras del período sea cual sea su
// estado (base de acréscimo del Imposto Industrial).
func AccruedPurchasesInPeriod(purchases []entity.Purchase, p Period) []entity.Purchase {
	out := make([]entity.Purchase, 0, len(purchases))
	for _, pu := range purchases {
		if p.Contains(pu.Date) {
			out = append(out, pu)
		}
	}
	return out
}

// PayrollInPeriod recibos de salario del período.
func PayrollInPeriod(slips []entity.SalarySlip, p Period) []entity.SalarySlip {
	out := make([]entity.SalarySlip, 0, len(slips))
	for _, s := range slips {
		if s.Year == p.Year && (p.Month == 0 || time.Month(s.Month) == p.Month) {
			out = append(out, s)
		}
	}
	return out
}
