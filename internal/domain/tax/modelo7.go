package tax

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/pkg/agt"
)

// SimplifiedRate taxa única del regime simplificado de IVA.
var SimplifiedRate = decimal.NewFromInt(7)

// RegularizationDestination campo de destino de las regularizações a favor
// del sujeito passivo en el anexo.
const RegularizationDestination = "SP"

// VATBucket base e imposto de una taxa.
type VATBucket struct {
	Rate decimal.Decimal
	Base decimal.Decimal
	Tax  decimal.Decimal
}

// SupplierAnnexRow una fila por compra del período.
type SupplierAnnexRow struct {
	PurchaseID     string
	SupplierNIF    string
	SupplierName   string
	DocumentType   entity.PurchaseType
	DocumentNumber string
	Date           time.Time
	Base           decimal.Decimal
	Tax            decimal.Decimal
	Deductible     decimal.Decimal // 100% del imposto
}

// SupplierAnnex anexo de fornecedores.
type SupplierAnnex struct {
	Rows            []SupplierAnnexRow
	TotalBase       decimal.Decimal
	TotalTax        decimal.Decimal
	TotalDeductible decimal.Decimal
}

// RegularizationRow documento anulado o nota de crédito del período.
type RegularizationRow struct {
	InvoiceID      string
	DocumentType   entity.InvoiceType
	DocumentNumber string
	Date           time.Time
	ClientNIF      string
	Base           decimal.Decimal
	Tax            decimal.Decimal
	Destination    string
}

// RegularizationAnnex anexo de regularizações.
type RegularizationAnnex struct {
	Rows      []RegularizationRow
	TotalBase decimal.Decimal
	TotalTax  decimal.Decimal
}

// Modelo7General declaração periódica en régimen general.
type Modelo7General struct {
	Period                 Period
	Buckets                []VATBucket
	TotalSalesBase         decimal.Decimal
	TotalFavorEstado       decimal.Decimal
	DeductibleTax          decimal.Decimal
	RegularizationsSubject decimal.Decimal
	TotalFavorSujeito      decimal.Decimal
	ToPay                  decimal.Decimal
	ToRecover              decimal.Decimal
	SupplierAnnex          SupplierAnnex
	RegularizationAnnex    RegularizationAnnex
}

// Modelo7Simplified declaração en régimen simplificado.
// TaxOnExempt aplica ExemptRate al volumen isento; por omisión es la misma
// taxa del régimen (comportamiento histórico pendiente de confirmar).
type Modelo7Simplified struct {
	Period          Period
	Documents       int
	Rate            decimal.Decimal
	Turnover        decimal.Decimal
	ExemptTurnover  decimal.Decimal
	TaxableTurnover decimal.Decimal
	TaxOnTaxable    decimal.Decimal
	ExemptRate      decimal.Decimal
	TaxOnExempt     decimal.Decimal
	TaxDue          decimal.Decimal
}

// Modelo7Input instantánea de datos para la declaração.
type Modelo7Input struct {
	Regime     entity.TaxRegime
	Period     Period
	Invoices   []entity.Invoice
	Purchases  []entity.Purchase
	ExemptRate decimal.Decimal // sólo régimen simplificado
}

// Modelo7Report resultado; sólo uno de los dos punteros viene informado.
type Modelo7Report struct {
	Regime     entity.TaxRegime
	General    *Modelo7General
	Simplified *Modelo7Simplified
}

// ComputeModelo7 despacha según el régimen del contribuyente.
func ComputeModelo7(in Modelo7Input) Modelo7Report {
	switch in.Regime {
	case entity.RegimeSimplified:
		r := SimplifiedRegime(in.Invoices, in.Period, in.ExemptRate)
		return Modelo7Report{Regime: in.Regime, Simplified: &r}
	default:
		r := GeneralRegime(in.Invoices, in.Purchases, in.Period)
		return Modelo7Report{Regime: entity.RegimeGeneral, General: &r}
	}
}

// GeneralRegime apura IVA liquidado por taxa, dedutível de compras y
// regularizações de documentos anulados o notas de crédito.
func GeneralRegime(invoices []entity.Invoice, purchases []entity.Purchase, p Period) Modelo7General {
	out := Modelo7General{Period: p}

	buckets := newBuckets()
	for _, inv := range CertifiedOnly(InvoicesInPeriod(invoices, p)) {
		if !inv.Type.IsSale() {
			continue
		}
		for _, it := range inv.Items {
			b := buckets.get(it.TaxRate)
			b.Base = b.Base.Add(it.Total)
			b.Tax = b.Tax.Add(it.Total.Mul(it.TaxRate.Shift(-2)))
		}
	}
	out.Buckets = buckets.list()
	for _, b := range out.Buckets {
		out.TotalSalesBase = out.TotalSalesBase.Add(b.Base)
		out.TotalFavorEstado = out.TotalFavorEstado.Add(b.Tax)
	}

	out.SupplierAnnex = buildSupplierAnnex(PurchasesInPeriod(purchases, p))
	out.DeductibleTax = out.SupplierAnnex.TotalDeductible

	out.RegularizationAnnex = buildRegularizationAnnex(invoices, p)
	out.RegularizationsSubject = out.RegularizationAnnex.TotalTax

	out.TotalFavorSujeito = out.DeductibleTax.Add(out.RegularizationsSubject)
	diff := out.TotalFavorEstado.Sub(out.TotalFavorSujeito)
	if diff.IsPositive() {
		out.ToPay = diff
	} else {
		out.ToRecover = diff.Neg()
	}
	return out
}

// SimplifiedRegime 7% sobre el volumen de negocios de documentos liquidados
// en el acto (FR, VD, RG).
func SimplifiedRegime(invoices []entity.Invoice, p Period, exemptRate decimal.Decimal) Modelo7Simplified {
	out := Modelo7Simplified{Period: p, Rate: SimplifiedRate, ExemptRate: exemptRate}
	for _, inv := range CertifiedOnly(InvoicesInPeriod(invoices, p)) {
		if !inv.Type.IsCashType() {
			continue
		}
		out.Documents++
		out.Turnover = out.Turnover.Add(inv.Total)
		for _, it := range inv.Items {
			if it.TaxRate.IsZero() {
				out.ExemptTurnover = out.ExemptTurnover.Add(it.Total)
			}
		}
	}
	out.TaxableTurnover = out.Turnover.Sub(out.ExemptTurnover)
	out.TaxOnTaxable = out.TaxableTurnover.Mul(SimplifiedRate.Shift(-2))
	out.TaxOnExempt = out.ExemptTurnover.Mul(exemptRate.Shift(-2))
	out.TaxDue = out.TaxOnTaxable.Add(out.TaxOnExempt)
	return out
}

func buildSupplierAnnex(purchases []entity.Purchase) SupplierAnnex {
	var a SupplierAnnex
	a.Rows = make([]SupplierAnnexRow, 0, len(purchases))
	for _, pu := range purchases {
		row := SupplierAnnexRow{
			PurchaseID:     pu.ID,
			SupplierNIF:    pu.SupplierNIF,
			SupplierName:   pu.SupplierName,
			DocumentType:   pu.Type,
			DocumentNumber: pu.Number,
			Date:           pu.Date,
			Base:           pu.Subtotal,
			Tax:            pu.TaxAmount,
			Deductible:     pu.TaxAmount,
		}
		a.Rows = append(a.Rows, row)
		a.TotalBase = a.TotalBase.Add(row.Base)
		a.TotalTax = a.TotalTax.Add(row.Tax)
		a.TotalDeductible = a.TotalDeductible.Add(row.Deductible)
	}
	return a
}

func buildRegularizationAnnex(invoices []entity.Invoice, p Period) RegularizationAnnex {
	a := RegularizationAnnex{Rows: make([]RegularizationRow, 0)}
	for _, inv := range invoices {
		if !inv.IsCertified || !p.Contains(inv.EffectiveDate()) {
			continue
		}
		if !inv.IsCancelled() && !inv.Type.IsCreditNote() {
			continue
		}
		row := RegularizationRow{
			InvoiceID:      inv.ID,
			DocumentType:   inv.Type,
			DocumentNumber: inv.Number,
			Date:           inv.EffectiveDate(),
			ClientNIF:      inv.ClientNIF,
			Base:           inv.Subtotal,
			Tax:            inv.TaxAmount,
			Destination:    RegularizationDestination,
		}
		a.Rows = append(a.Rows, row)
		a.TotalBase = a.TotalBase.Add(row.Base)
		a.TotalTax = a.TotalTax.Add(row.Tax)
	}
	return a
}

// bucketSet agrupa por taxa conservando el orden legal y añadiendo al final
// cualquier taxa fuera del conjunto estándar.
type bucketSet struct {
	items []*VATBucket
}

func newBuckets() *bucketSet {
	s := &bucketSet{}
	for _, r := range agt.StandardTaxRates {
		s.items = append(s.items, &VATBucket{Rate: r})
	}
	return s
}

func (s *bucketSet) get(rate decimal.Decimal) *VATBucket {
	for _, b := range s.items {
		if b.Rate.Equal(rate) {
			return b
		}
	}
	b := &VATBucket{Rate: rate}
	s.items = append(s.items, b)
	return b
}

func (s *bucketSet) list() []VATBucket {
	out := make([]VATBucket, len(s.items))
	for i, b := range s.items {
		out[i] = *b
	}
	return out
}
