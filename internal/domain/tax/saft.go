package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// SalesSummary totales de control de SourceDocuments/SalesInvoices.
// TotalDebit suma las bases de notas de crédito; TotalCredit las del resto.
// Los documentos anulados cuentan en NumberOfEntries pero no en los totales.
type SalesSummary struct {
	Period          Period
	Documents       []entity.Invoice
	NumberOfEntries int
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
}

// SummarizeSales documentos certificados del período (incluidos los anulados,
// que el ficheiro debe declarar con su estado).
func SummarizeSales(invoices []entity.Invoice, p Period) SalesSummary {
	s := SalesSummary{Period: p, Documents: make([]entity.Invoice, 0)}
	for _, inv := range invoices {
		if !inv.IsCertified || !p.Contains(inv.EffectiveDate()) {
			continue
		}
		if !inv.Type.AffectsFiscalTotals() {
			// recibos, pró-formas y orçamentos van en otras secciones
			continue
		}
		s.Documents = append(s.Documents, inv)
		s.NumberOfEntries++
		if inv.IsCancelled() {
			continue
		}
		if inv.Type.IsCreditNote() {
			s.TotalDebit = s.TotalDebit.Add(inv.Subtotal)
		} else {
			s.TotalCredit = s.TotalCredit.Add(inv.Subtotal)
		}
	}
	return s
}
