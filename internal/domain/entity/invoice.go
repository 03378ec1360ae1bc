package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType tipo de documento de venta (AGT). Enumeración cerrada: todo
// clasificador de este archivo debe cubrir cada valor de AllInvoiceTypes.
type InvoiceType string

const (
	InvoiceTypeFT InvoiceType = "FT" // Fatura
	InvoiceTypeFR InvoiceType = "FR" // Fatura-Recibo
	InvoiceTypeVD InvoiceType = "VD" // Venda a Dinheiro
	InvoiceTypeNC InvoiceType = "NC" // Nota de Crédito
	InvoiceTypeND InvoiceType = "ND" // Nota de Débito
	InvoiceTypeRG InvoiceType = "RG" // Recibo
	InvoiceTypePP InvoiceType = "PP" // Factura Pró-forma
	InvoiceTypeOR InvoiceType = "OR" // Orçamento
)

// AllInvoiceTypes lista completa, en el orden en que se presentan al usuario.
var AllInvoiceTypes = []InvoiceType{
	InvoiceTypeFT, InvoiceTypeFR, InvoiceTypeVD, InvoiceTypeNC,
	InvoiceTypeND, InvoiceTypeRG, InvoiceTypePP, InvoiceTypeOR,
}

// Valid indica si el tipo pertenece a la enumeración.
func (t InvoiceType) Valid() bool {
	switch t {
	case InvoiceTypeFT, InvoiceTypeFR, InvoiceTypeVD, InvoiceTypeNC,
		InvoiceTypeND, InvoiceTypeRG, InvoiceTypePP, InvoiceTypeOR:
		return true
	default:
		return false
	}
}

// Description nombre legal del documento.
func (t InvoiceType) Description() string {
	switch t {
	case InvoiceTypeFT:
		return "Fatura"
	case InvoiceTypeFR:
		return "Fatura-Recibo"
	case InvoiceTypeVD:
		return "Venda a Dinheiro"
	case InvoiceTypeNC:
		return "Nota de Crédito"
	case InvoiceTypeND:
		return "Nota de Débito"
	case InvoiceTypeRG:
		return "Recibo"
	case InvoiceTypePP:
		return "Factura Pró-forma"
	case InvoiceTypeOR:
		return "Orçamento"
	default:
		return ""
	}
}

// IsSale indica si el documento genera volumen de negocio (bases de IVA,
// proveitos del Modelo 1). Recibos, pró-formas y orçamentos no lo hacen;
// la nota de crédito se trata como regularización.
func (t InvoiceType) IsSale() bool {
	switch t {
	case InvoiceTypeFT, InvoiceTypeFR, InvoiceTypeVD, InvoiceTypeND:
		return true
	case InvoiceTypeNC, InvoiceTypeRG, InvoiceTypePP, InvoiceTypeOR:
		return false
	default:
		return false
	}
}

// IsCashType documentos liquidados en el acto (regime simplificado e imposto de selo).
func (t InvoiceType) IsCashType() bool {
	switch t {
	case InvoiceTypeFR, InvoiceTypeVD, InvoiceTypeRG:
		return true
	case InvoiceTypeFT, InvoiceTypeNC, InvoiceTypeND, InvoiceTypePP, InvoiceTypeOR:
		return false
	default:
		return false
	}
}

// IsCreditNote indica si el documento revierte ventas anteriores.
func (t InvoiceType) IsCreditNote() bool {
	switch t {
	case InvoiceTypeNC:
		return true
	case InvoiceTypeFT, InvoiceTypeFR, InvoiceTypeVD, InvoiceTypeND,
		InvoiceTypeRG, InvoiceTypePP, InvoiceTypeOR:
		return false
	default:
		return false
	}
}

// AffectsFiscalTotals documentos que entran en el SAF-T de facturação y en
// los totales de control (ventas y sus correcciones).
func (t InvoiceType) AffectsFiscalTotals() bool {
	switch t {
	case InvoiceTypeFT, InvoiceTypeFR, InvoiceTypeVD, InvoiceTypeNC, InvoiceTypeND:
		return true
	case InvoiceTypeRG, InvoiceTypePP, InvoiceTypeOR:
		return false
	default:
		return false
	}
}

// StockEffect dirección del movimiento de stock que produce el documento
// certificado. ok=false cuando el documento no mueve mercancía.
func (t InvoiceType) StockEffect() (mt StockMovementType, ok bool) {
	switch t {
	case InvoiceTypeFT, InvoiceTypeFR, InvoiceTypeVD, InvoiceTypeND:
		return StockMovementExit, true
	case InvoiceTypeNC:
		return StockMovementEntry, true
	case InvoiceTypeRG, InvoiceTypePP, InvoiceTypeOR:
		return "", false
	default:
		return "", false
	}
}

// InvoiceStatus estado de cobro/ciclo de vida.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// RetentionType cativação de IVA elegida por el operador.
type RetentionType string

const (
	RetentionNone   RetentionType = "NONE"
	RetentionCat50  RetentionType = "CAT_50"
	RetentionCat100 RetentionType = "CAT_100"
)

// Factor fracción del IVA retenida.
func (r RetentionType) Factor() decimal.Decimal {
	switch r {
	case RetentionCat50:
		return decimal.NewFromFloat(0.5)
	case RetentionCat100:
		return decimal.NewFromInt(1)
	default:
		return decimal.Zero
	}
}

// ItemType naturaleza de la línea (dispara la retenção na fonte si es SERVICE).
type ItemType string

const (
	ItemTypeProduct ItemType = "PRODUCT"
	ItemTypeService ItemType = "SERVICE"
)

// InvoiceItem línea de documento. Length/Width/Height en cero se tratan como 1.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string // vacío = línea libre sin producto
	WarehouseID string
	Description string
	Type        ItemType
	Quantity    decimal.Decimal
	Length      decimal.Decimal
	Width       decimal.Decimal
	Height      decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // porcentaje
	TaxRate     decimal.Decimal // porcentaje: 14, 7, 5, 0
	Total       decimal.Decimal // derivado
	Rubrica     string          // código contable
}

// Invoice cabecera de un documento de venta.
type Invoice struct {
	ID                  string
	CompanyID           string
	Type                InvoiceType
	SeriesID            string
	Number              string // vacío hasta la certificación
	Date                time.Time
	DueDate             *time.Time
	AccountingDate      *time.Time
	SystemEntryDate     *time.Time // momento de la certificación
	ClientID            string
	ClientNIF           string
	ClientName          string
	ReferenceID         string // documento de origen (NC, ND, RG)
	Items               []InvoiceItem
	Subtotal            decimal.Decimal
	GlobalDiscount      decimal.Decimal // porcentaje
	GlobalDiscountValue decimal.Decimal
	TaxAmount           decimal.Decimal
	WithholdingEnabled  bool
	WithholdingAmount   decimal.Decimal
	RetentionType       RetentionType
	RetentionAmount     decimal.Decimal
	Total               decimal.Decimal
	Currency            string
	ExchangeRate        decimal.Decimal
	ContraValue         decimal.Decimal
	Status              InvoiceStatus
	IsCertified         bool
	Hash                string
	PaymentMethod       string
	CashRegisterID      string
	CancelReason        string
	CancelledAt         *time.Time
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EffectiveDate fecha contable si existe, si no la de emisión.
func (i *Invoice) EffectiveDate() time.Time {
	if i.AccountingDate != nil {
		return *i.AccountingDate
	}
	return i.Date
}

// IsCancelled atajo sobre Status.
func (i *Invoice) IsCancelled() bool {
	return i.Status == InvoiceStatusCancelled
}

// HasService indica si alguna línea es de servicios.
func (i *Invoice) HasService() bool {
	for _, it := range i.Items {
		if it.Type == ItemTypeService {
			return true
		}
	}
	return false
}
