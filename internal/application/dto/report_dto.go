package dto

import "github.com/shopspring/decimal"

// VATBucketDTO base e imposto por taxa.
type VATBucketDTO struct {
	Rate decimal.Decimal `json:"rate"`
	Base decimal.Decimal `json:"base"`
	Tax  decimal.Decimal `json:"tax"`
}

// SupplierAnnexRowDTO fila del anexo de fornecedores.
type SupplierAnnexRowDTO struct {
	SupplierNIF    string          `json:"supplier_nif"`
	SupplierName   string          `json:"supplier_name"`
	DocumentType   string          `json:"document_type"`
	DocumentNumber string          `json:"document_number"`
	Date           string          `json:"date"`
	Base           decimal.Decimal `json:"base"`
	Tax            decimal.Decimal `json:"tax"`
	Deductible     decimal.Decimal `json:"deductible"`
}

// RegularizationRowDTO fila del anexo de regularizações.
type RegularizationRowDTO struct {
	DocumentType   string          `json:"document_type"`
	DocumentNumber string          `json:"document_number"`
	Date           string          `json:"date"`
	ClientNIF      string          `json:"client_nif"`
	Base           decimal.Decimal `json:"base"`
	Tax            decimal.Decimal `json:"tax"`
	Destination    string          `json:"destination"`
}

// Modelo7GeneralDTO régimen general.
type Modelo7GeneralDTO struct {
	Buckets                []VATBucketDTO         `json:"buckets"`
	TotalSalesBase         decimal.Decimal        `json:"total_sales_base"`
	TotalFavorEstado       decimal.Decimal        `json:"total_favor_estado"`
	DeductibleTax          decimal.Decimal        `json:"deductible_tax"`
	RegularizationsSubject decimal.Decimal        `json:"regularizations_subject"`
	TotalFavorSujeito      decimal.Decimal        `json:"total_favor_sujeito"`
	ToPay                  decimal.Decimal        `json:"to_pay"`
	ToRecover              decimal.Decimal        `json:"to_recover"`
	SupplierAnnex          []SupplierAnnexRowDTO  `json:"supplier_annex"`
	SupplierAnnexTotalTax  decimal.Decimal        `json:"supplier_annex_total_tax"`
	RegularizationAnnex    []RegularizationRowDTO `json:"regularization_annex"`
	RegularizationTotalTax decimal.Decimal        `json:"regularization_total_tax"`
}

// Modelo7SimplifiedDTO régimen simplificado.
type Modelo7SimplifiedDTO struct {
	Documents       int             `json:"documents"`
	Rate            decimal.Decimal `json:"rate"`
	Turnover        decimal.Decimal `json:"turnover"`
	ExemptTurnover  decimal.Decimal `json:"exempt_turnover"`
	TaxableTurnover decimal.Decimal `json:"taxable_turnover"`
	TaxOnTaxable    decimal.Decimal `json:"tax_on_taxable"`
	ExemptRate      decimal.Decimal `json:"exempt_rate"`
	TaxOnExempt     decimal.Decimal `json:"tax_on_exempt"`
	TaxDue          decimal.Decimal `json:"tax_due"`
}

// Modelo7Response GET /api/reports/modelo7.
type Modelo7Response struct {
	Period     string                `json:"period"`
	Regime     string                `json:"regime"`
	General    *Modelo7GeneralDTO    `json:"general,omitempty"`
	Simplified *Modelo7SimplifiedDTO `json:"simplified,omitempty"`
}

// Modelo1LineDTO linha de la declaração.
type Modelo1LineDTO struct {
	Code       string          `json:"code"`
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Computed   decimal.Decimal `json:"computed"`
	Overridden bool            `json:"overridden"`
	Manual     bool            `json:"manual"`
}

// Modelo1DeclarationDTO un ejercicio.
type Modelo1DeclarationDTO struct {
	Year                       int              `json:"year"`
	Lines                      []Modelo1LineDTO `json:"lines"`
	FSEBreakdown               []Modelo1LineDTO `json:"fse_breakdown,omitempty"`
	TotalProveitosOperacionais decimal.Decimal  `json:"total_proveitos_operacionais"`
	TotalOutrosProveitos       decimal.Decimal  `json:"total_outros_proveitos"`
	TotalProveitosGeral        decimal.Decimal  `json:"total_proveitos_geral"`
	TotalCustos                decimal.Decimal  `json:"total_custos"`
	ResultadoAntesImpostos     decimal.Decimal  `json:"resultado_antes_impostos"`
	AcrescimosFiscais          decimal.Decimal  `json:"acrescimos_fiscais"`
	Deducoes                   decimal.Decimal  `json:"deducoes"`
	LucroTributavel            decimal.Decimal  `json:"lucro_tributavel"`
	Colecta                    decimal.Decimal  `json:"colecta"`
	DeducoesColecta            decimal.Decimal  `json:"deducoes_colecta"`
	ImpostoPagar               decimal.Decimal  `json:"imposto_pagar"`
}

// Modelo1Response GET /api/reports/modelo1 (columna actual y comparativa).
type Modelo1Response struct {
	Current Modelo1DeclarationDTO `json:"current"`
	Prior   Modelo1DeclarationDTO `json:"prior"`
}

// Modelo1OverridesRequest PUT /api/reports/modelo1/overrides. Los valores
// llegan como texto del formulario ("1 800 000,50"); vacío o inválido = sin override.
type Modelo1OverridesRequest struct {
	Year   int               `json:"year" validate:"required,min=2000,max=2100"`
	Values map[string]string `json:"values"`
}

// StampDutyRowDTO documento del mapa de Imposto de Selo.
type StampDutyRowDTO struct {
	DocumentType   string          `json:"document_type"`
	DocumentNumber string          `json:"document_number"`
	Date           string          `json:"date"`
	ClientName     string          `json:"client_name"`
	Base           decimal.Decimal `json:"base"`
	Tax            decimal.Decimal `json:"tax"`
}

// StampDutyResponse GET /api/reports/stamp-duty.
type StampDutyResponse struct {
	Period    string            `json:"period"`
	Rows      []StampDutyRowDTO `json:"rows"`
	TotalBase decimal.Decimal   `json:"total_base"`
	TotalTax  decimal.Decimal   `json:"total_tax"`
}

// DashboardSummaryDTO GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Period        string          `json:"period"`
	Documents     int             `json:"documents"`
	GrossSales    decimal.Decimal `json:"gross_sales"`
	CreditNotes   decimal.Decimal `json:"credit_notes"`
	NetSales      decimal.Decimal `json:"net_sales"`
	VATCharged    decimal.Decimal `json:"vat_charged"`
	Withholding   decimal.Decimal `json:"withholding"`
	Retention     decimal.Decimal `json:"retention"`
	StampDuty     decimal.Decimal `json:"stamp_duty"`
	Purchases     decimal.Decimal `json:"purchases"`
	DeductibleVAT decimal.Decimal `json:"deductible_vat"`
	NetSalesText  string          `json:"net_sales_text"` // formateado pt-AO
}
