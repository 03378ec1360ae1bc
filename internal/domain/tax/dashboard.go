package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// DashboardSummary indicadores fiscales del período sobre documentos
// certificados.
type DashboardSummary struct {
	Period        Period
	Documents     int
	GrossSales    decimal.Decimal // Σ subtotal de ventas
	CreditNotes   decimal.Decimal
	NetSales      decimal.Decimal
	VATCharged    decimal.Decimal
	Withholding   decimal.Decimal
	Retention     decimal.Decimal
	StampDuty     decimal.Decimal
	Purchases     decimal.Decimal
	DeductibleVAT decimal.Decimal
}

// ComputeDashboard resume ventas, IVA y retenções del período.
func ComputeDashboard(invoices []entity.Invoice, purchases []entity.Purchase, p Period) DashboardSummary {
	d := DashboardSummary{Period: p}
	for _, inv := range CertifiedOnly(InvoicesInPeriod(invoices, p)) {
		switch {
		case inv.Type.IsSale():
			d.Documents++
			d.GrossSales = d.GrossSales.Add(inv.Subtotal)
			d.VATCharged = d.VATCharged.Add(inv.TaxAmount)
			d.Withholding = d.Withholding.Add(inv.WithholdingAmount)
			d.Retention = d.Retention.Add(inv.RetentionAmount)
		case inv.Type.IsCreditNote():
			d.Documents++
			d.CreditNotes = d.CreditNotes.Add(inv.Subtotal)
		}
	}
	d.NetSales = d.GrossSales.Sub(d.CreditNotes)
	d.StampDuty = ComputeStampDuty(invoices, p).TotalTax
	for _, pu := range PurchasesInPeriod(purchases, p) {
		d.Purchases = d.Purchases.Add(pu.Subtotal)
		d.DeductibleVAT = d.DeductibleVAT.Add(pu.TaxAmount)
	}
	return d
}
