package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest línea de un borrador.
// Length/Width/Height en cero se tratan como 1.
type InvoiceItemRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	Description string          `json:"description" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=PRODUCT SERVICE"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	Length      decimal.Decimal `json:"length"`
	Width       decimal.Decimal `json:"width"`
	Height      decimal.Decimal `json:"height"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Discount    decimal.Decimal `json:"discount" validate:"gte=0"`
	TaxRate     decimal.Decimal `json:"tax_rate" validate:"gte=0"`
}

// PreviewInvoiceRequest body para POST /api/invoices/preview.
type PreviewInvoiceRequest struct {
	Type           string               `json:"type" validate:"required,oneof=FT FR VD NC ND RG PP OR"`
	Currency       string               `json:"currency,omitempty"`
	GlobalDiscount decimal.Decimal      `json:"global_discount" validate:"gte=0"`
	RetentionType  string               `json:"retention_type,omitempty" validate:"omitempty,oneof=NONE CAT_50 CAT_100"`
	Items          []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceTotalsResponse derivados de un documento.
type InvoiceTotalsResponse struct {
	LineTotals          []decimal.Decimal `json:"line_totals"`
	Subtotal            decimal.Decimal   `json:"subtotal"`
	TaxAmount           decimal.Decimal   `json:"tax_amount"`
	GlobalDiscountValue decimal.Decimal   `json:"global_discount_value"`
	WithholdingEnabled  bool              `json:"withholding_enabled"`
	WithholdingAmount   decimal.Decimal   `json:"withholding_amount"`
	RetentionAmount     decimal.Decimal   `json:"retention_amount"`
	Total               decimal.Decimal   `json:"total"`
	Currency            string            `json:"currency"`
	ExchangeRate        decimal.Decimal   `json:"exchange_rate"`
	ContraValue         decimal.Decimal   `json:"contra_value"`
}

// CertifyInvoiceRequest body para POST /api/invoices/:id/certify.
// ManualNumber/ManualHash sólo para séries MANUAL.
type CertifyInvoiceRequest struct {
	ManualNumber string `json:"manual_number,omitempty"`
	ManualHash   string `json:"manual_hash,omitempty"`
}

// CancelInvoiceRequest body para POST /api/invoices/:id/cancel.
type CancelInvoiceRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// InvoiceResponse documento tras certificar o anular.
type InvoiceResponse struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	Number             string          `json:"number"`
	Date               string          `json:"date"`
	ClientName         string          `json:"client_name,omitempty"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	WithholdingEnabled bool            `json:"withholding_enabled"`
	WithholdingAmount  decimal.Decimal `json:"withholding_amount"`
	RetentionAmount    decimal.Decimal `json:"retention_amount"`
	Total              decimal.Decimal `json:"total"`
	Currency           string          `json:"currency"`
	ContraValue        decimal.Decimal `json:"contra_value"`
	Status             string          `json:"status"`
	IsCertified        bool            `json:"is_certified"`
	Hash               string          `json:"hash,omitempty"`
	CancelReason       string          `json:"cancel_reason,omitempty"`
}
