package tax_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
)

func TestStampDuty_ReciboDelMes(t *testing.T) {
	rg := certified("1", entity.InvoiceTypeRG, day(2024, 3, 12), entity.ItemTypeService, "100000", "0")

	r := tax.ComputeStampDuty([]entity.Invoice{rg}, tax.MonthPeriod(2024, time.March))

	require.Len(t, r.Rows, 1)
	assertDec(t, "100000", r.Rows[0].Base)
	assertDec(t, "1000", r.Rows[0].Tax)
	assertDec(t, "1000", r.TotalTax)
}

func TestStampDuty_FiltraTipoEstadoYMes(t *testing.T) {
	cancelled := certified("3", entity.InvoiceTypeVD, day(2024, 3, 1), entity.ItemTypeProduct, "5000", "0")
	cancelled.Status = entity.InvoiceStatusCancelled
	draft := certified("4", entity.InvoiceTypeFR, day(2024, 3, 1), entity.ItemTypeProduct, "5000", "0")
	draft.IsCertified = false
	invoices := []entity.Invoice{
		certified("1", entity.InvoiceTypeFR, day(2024, 3, 1), entity.ItemTypeProduct, "10000", "14"),
		certified("2", entity.InvoiceTypeFT, day(2024, 3, 1), entity.ItemTypeProduct, "10000", "14"),
		cancelled,
		draft,
		certified("5", entity.InvoiceTypeVD, day(2024, 4, 1), entity.ItemTypeProduct, "5000", "0"),
		certified("6", entity.InvoiceTypeVD, day(2024, 3, 31), entity.ItemTypeProduct, "2000", "0"),
	}

	r := tax.ComputeStampDuty(invoices, tax.MonthPeriod(2024, time.March))

	require.Len(t, r.Rows, 2)
	assert.Equal(t, "1", r.Rows[0].InvoiceID)
	assert.Equal(t, "6", r.Rows[1].InvoiceID)
	assertDec(t, "13400", r.TotalBase)
	assertDec(t, "134", r.TotalTax)
}

func TestSummarizeSales(t *testing.T) {
	cancelled := certified("3", entity.InvoiceTypeFT, day(2024, 3, 3), entity.ItemTypeProduct, "500", "14")
	cancelled.Status = entity.InvoiceStatusCancelled
	invoices := []entity.Invoice{
		certified("1", entity.InvoiceTypeFT, day(2024, 3, 1), entity.ItemTypeProduct, "1000", "14"),
		certified("2", entity.InvoiceTypeNC, day(2024, 3, 2), entity.ItemTypeProduct, "200", "14"),
		cancelled,
		certified("4", entity.InvoiceTypeRG, day(2024, 3, 4), entity.ItemTypeProduct, "1140", "0"),
		certified("5", entity.InvoiceTypePP, day(2024, 3, 4), entity.ItemTypeProduct, "9", "0"),
	}

	s := tax.SummarizeSales(invoices, tax.MonthPeriod(2024, time.March))

	assert.Equal(t, 3, s.NumberOfEntries)
	assertDec(t, "1000", s.TotalCredit)
	assertDec(t, "200", s.TotalDebit)
}

func TestComputeDashboard(t *testing.T) {
	svc := certified("1", entity.InvoiceTypeFT, day(2024, 3, 1), entity.ItemTypeService, "25000", "14")
	svc.WithholdingAmount = dec("1625")
	invoices := []entity.Invoice{
		svc,
		certified("2", entity.InvoiceTypeNC, day(2024, 3, 2), entity.ItemTypeProduct, "5000", "14"),
		certified("3", entity.InvoiceTypeRG, day(2024, 3, 3), entity.ItemTypeProduct, "10000", "0"),
	}
	purchases := []entity.Purchase{purchase("p", entity.PurchaseTypeFT, day(2024, 3, 1), entity.PurchaseStatusPaid, "1000", "140")}

	d := tax.ComputeDashboard(invoices, purchases, tax.MonthPeriod(2024, time.March))

	assert.Equal(t, 2, d.Documents)
	assertDec(t, "25000", d.GrossSales)
	assertDec(t, "20000", d.NetSales)
	assertDec(t, "3500", d.VATCharged)
	assertDec(t, "1625", d.Withholding)
	assertDec(t, "100", d.StampDuty)
	assertDec(t, "140", d.DeductibleVAT)
}
