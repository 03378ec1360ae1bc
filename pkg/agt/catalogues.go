// Package agt contiene catálogos y validaciones alineados con las normas de
// facturación de la Administração Geral Tributária (Angola) y el SAF-T (AO).
package agt

import "github.com/shopspring/decimal"

// =============================================================================
// Taxas de IVA (Código do IVA, art. 19.º e Anexo I)
// =============================================================================

var (
	TaxRateStandard = decimal.NewFromInt(14) // taxa geral
	TaxRateReduced7 = decimal.NewFromInt(7)  // regime simplificado / bens específicos
	TaxRateReduced5 = decimal.NewFromInt(5)  // cesta básica
	TaxRateExempt   = decimal.Zero           // isento / não sujeito
)

// StandardTaxRates en el orden en que aparecen en el Modelo 7.
var StandardTaxRates = []decimal.Decimal{TaxRateStandard, TaxRateReduced7, TaxRateReduced5, TaxRateExempt}

// IsStandardTaxRate indica si la taxa pertenece al conjunto legal.
func IsStandardTaxRate(rate decimal.Decimal) bool {
	for _, r := range StandardTaxRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// TaxCode código SAF-T (AO) TaxCode para una taxa.
func TaxCode(rate decimal.Decimal) string {
	switch {
	case rate.Equal(TaxRateStandard):
		return "NOR"
	case rate.Equal(TaxRateReduced7), rate.Equal(TaxRateReduced5):
		return "RED"
	case rate.IsZero():
		return "ISE"
	default:
		return "OUT"
	}
}

// =============================================================================
// Isenções (TaxExemptionCode SAF-T AO)
// =============================================================================

const (
	ExemptionM00 = "M00" // Regime transitório
	ExemptionM02 = "M02" // Transmissão de bens e serviço não sujeita
	ExemptionM10 = "M10" // Isento nos termos da alínea a) do n.º 1 do artigo 12.º
	ExemptionM11 = "M11" // Isento nos termos da alínea b) do n.º 1 do artigo 12.º
)

// ExemptionReasons descripciones legales de los códigos de isenção.
var ExemptionReasons = map[string]string{
	ExemptionM00: "Regime Transitório",
	ExemptionM02: "Transmissão de bens e serviço não sujeita",
	ExemptionM10: "Isento nos termos da alínea a) do nº1 do artigo 12.º do CIVA",
	ExemptionM11: "Isento nos termos da alínea b) do nº1 do artigo 12.º do CIVA",
}

// =============================================================================
// Mecanismos de pagamento (PaymentMechanism SAF-T AO)
// =============================================================================

const (
	PaymentCash       = "NU" // Numerário
	PaymentCard       = "CC" // Cartão de crédito
	PaymentDebitCard  = "CD" // Cartão de débito
	PaymentTransfer   = "TB" // Transferência bancária
	PaymentMulticaixa = "MB" // Referência Multicaixa
	PaymentCheque     = "CH" // Cheque
	PaymentOther      = "OU" // Outros
)

// ValidPaymentMechanisms códigos aceptados en documentos y caja.
var ValidPaymentMechanisms = map[string]bool{
	PaymentCash: true, PaymentCard: true, PaymentDebitCard: true,
	PaymentTransfer: true, PaymentMulticaixa: true, PaymentCheque: true,
	PaymentOther: true,
}

// =============================================================================
// Encabezado SAF-T
// =============================================================================

const (
	SAFTAuditFileVersion = "1.01_01"
	SAFTNamespace        = "urn:OECD:StandardAuditFile-Tax:AO_1.01_01"
	SAFTCurrencyCode     = "AOA"
	// TaxAccountingBasis "F" = facturação.
	SAFTTaxAccountingBasis = "F"
	SAFTTaxEntity          = "Global"
)

// ConsumerFinalNIF NIF genérico para consumidor final.
const ConsumerFinalNIF = "999999999"
