package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const (
	invoicesTable     = "invoices"
	invoiceItemsTable = "invoice_items"
)

var invoiceColumns = []string{
	"id", "company_id", "type", "series_id", "number", "date", "due_date",
	"accounting_date", "system_entry_date", "client_id", "client_nif", "client_name",
	"reference_id", "subtotal", "global_discount", "global_discount_value", "tax_amount",
	"withholding_enabled", "withholding_amount", "retention_type", "retention_amount",
	"total", "currency", "exchange_rate", "contra_value", "status", "is_certified",
	"hash", "payment_method", "cash_register_id", "cancel_reason", "cancelled_at",
	"created_by", "created_at", "updated_at",
}

var invoiceItemColumns = []string{
	"id", "invoice_id", "position", "product_id", "warehouse_id", "description", "type",
	"quantity", "length", "width", "height", "unit_price", "discount", "tax_rate",
	"total", "rubrica",
}

type invoiceRow struct {
	ID                  string          `db:"id"`
	CompanyID           string          `db:"company_id"`
	Type                string          `db:"type"`
	SeriesID            *string         `db:"series_id"`
	Number              *string         `db:"number"`
	Date                time.Time       `db:"date"`
	DueDate             *time.Time      `db:"due_date"`
	AccountingDate      *time.Time      `db:"accounting_date"`
	SystemEntryDate     *time.Time      `db:"system_entry_date"`
	ClientID            *string         `db:"client_id"`
	ClientNIF           string          `db:"client_nif"`
	ClientName          string          `db:"client_name"`
	ReferenceID         *string         `db:"reference_id"`
	Subtotal            decimal.Decimal `db:"subtotal"`
	GlobalDiscount      decimal.Decimal `db:"global_discount"`
	GlobalDiscountValue decimal.Decimal `db:"global_discount_value"`
	TaxAmount           decimal.Decimal `db:"tax_amount"`
	WithholdingEnabled  bool            `db:"withholding_enabled"`
	WithholdingAmount   decimal.Decimal `db:"withholding_amount"`
	RetentionType       string          `db:"retention_type"`
	RetentionAmount     decimal.Decimal `db:"retention_amount"`
	Total               decimal.Decimal `db:"total"`
	Currency            string          `db:"currency"`
	ExchangeRate        decimal.Decimal `db:"exchange_rate"`
	ContraValue         decimal.Decimal `db:"contra_value"`
	Status              string          `db:"status"`
	IsCertified         bool            `db:"is_certified"`
	Hash                string          `db:"hash"`
	PaymentMethod       string          `db:"payment_method"`
	CashRegisterID      *string         `db:"cash_register_id"`
	CancelReason        string          `db:"cancel_reason"`
	CancelledAt         *time.Time      `db:"cancelled_at"`
	CreatedBy           string          `db:"created_by"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

type invoiceItemRow struct {
	ID          string          `db:"id"`
	InvoiceID   string          `db:"invoice_id"`
	Position    int             `db:"position"`
	ProductID   *string         `db:"product_id"`
	WarehouseID *string         `db:"warehouse_id"`
	Description string          `db:"description"`
	Type        string          `db:"type"`
	Quantity    decimal.Decimal `db:"quantity"`
	Length      decimal.Decimal `db:"length"`
	Width       decimal.Decimal `db:"width"`
	Height      decimal.Decimal `db:"height"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Discount    decimal.Decimal `db:"discount"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	Total       decimal.Decimal `db:"total"`
	Rubrica     string          `db:"rubrica"`
}

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	inv.CreatedAt = timeOrNow(inv.CreatedAt)
	inv.UpdatedAt = inv.CreatedAt
	row := toInvoiceRow(inv)

	_, err := exec(ctx, r.q, psql.Insert(invoicesTable).Columns(invoiceColumns...).Values(
		row.ID, row.CompanyID, row.Type, row.SeriesID, row.Number, row.Date, row.DueDate,
		row.AccountingDate, row.SystemEntryDate, row.ClientID, row.ClientNIF, row.ClientName,
		row.ReferenceID, row.Subtotal, row.GlobalDiscount, row.GlobalDiscountValue, row.TaxAmount,
		row.WithholdingEnabled, row.WithholdingAmount, row.RetentionType, row.RetentionAmount,
		row.Total, row.Currency, row.ExchangeRate, row.ContraValue, row.Status, row.IsCertified,
		row.Hash, row.PaymentMethod, row.CashRegisterID, row.CancelReason, row.CancelledAt,
		row.CreatedBy, row.CreatedAt, row.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert invoice: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	if len(inv.Items) == 0 {
		return nil
	}

	ins := psql.Insert(invoiceItemsTable).Columns(invoiceItemColumns...)
	for i := range inv.Items {
		it := &inv.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.InvoiceID = inv.ID
		ins = ins.Values(
			it.ID, it.InvoiceID, i, nullIfEmpty(it.ProductID), nullIfEmpty(it.WarehouseID),
			it.Description, string(it.Type), it.Quantity, it.Length, it.Width, it.Height,
			it.UnitPrice, it.Discount, it.TaxRate, it.Total, it.Rubrica,
		)
	}
	if _, err := exec(ctx, r.q, ins); err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

// Update persiste totales, numeración, hash y estado. Las líneas sólo cambian
// su total derivado.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	row := toInvoiceRow(inv)
	cmd, err := exec(ctx, r.q, psql.Update(invoicesTable).SetMap(map[string]any{
		"series_id":             row.SeriesID,
		"number":                row.Number,
		"accounting_date":       row.AccountingDate,
		"system_entry_date":     row.SystemEntryDate,
		"subtotal":              row.Subtotal,
		"global_discount_value": row.GlobalDiscountValue,
		"tax_amount":            row.TaxAmount,
		"withholding_enabled":   row.WithholdingEnabled,
		"withholding_amount":    row.WithholdingAmount,
		"retention_amount":      row.RetentionAmount,
		"total":                 row.Total,
		"exchange_rate":         row.ExchangeRate,
		"contra_value":          row.ContraValue,
		"status":                row.Status,
		"is_certified":          row.IsCertified,
		"hash":                  row.Hash,
		"cancel_reason":         row.CancelReason,
		"cancelled_at":          row.CancelledAt,
		"updated_at":            row.UpdatedAt,
	}).Where(sq.Eq{"id": inv.ID, "company_id": inv.CompanyID}))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update invoice %s: %w", inv.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	for _, it := range inv.Items {
		if it.ID == "" {
			continue
		}
		if _, err := exec(ctx, r.q, psql.Update(invoiceItemsTable).
			Set("total", it.Total).
			Where(sq.Eq{"id": it.ID, "invoice_id": inv.ID})); err != nil {
			return fmt.Errorf("update invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas. nil si no existe en la empresa.
func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	var row invoiceRow
	found, err := getOne(ctx, r.q, &row, psql.Select(invoiceColumns...).From(invoicesTable).
		Where(sq.Eq{"id": id, "company_id": companyID}))
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if !found {
		return nil, nil
	}
	inv := row.toEntity()
	items, err := r.items(ctx, []string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Items = items[inv.ID]
	return &inv, nil
}

// List documentos de la empresa en la ventana, filtrando por la fecha
// efectiva (contable o de emisión).
func (r *InvoiceRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]entity.Invoice, error) {
	b := psql.Select(invoiceColumns...).From(invoicesTable).
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("COALESCE(accounting_date, date)", "created_at")
	b = dateWindow(b, "COALESCE(accounting_date, date)", f)

	var rows []invoiceRow
	if err := selectAll(ctx, r.q, &rows, b); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Invoice, len(rows))
	for i := range rows {
		out[i] = rows[i].toEntity()
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *InvoiceRepo) items(ctx context.Context, invoiceIDs []string) (map[string][]entity.InvoiceItem, error) {
	var rows []invoiceItemRow
	if err := selectAll(ctx, r.q, &rows, psql.Select(invoiceItemColumns...).From(invoiceItemsTable).
		Where(sq.Eq{"invoice_id": invoiceIDs}).
		OrderBy("invoice_id", "position")); err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	out := make(map[string][]entity.InvoiceItem, len(invoiceIDs))
	for _, it := range rows {
		out[it.InvoiceID] = append(out[it.InvoiceID], entity.InvoiceItem{
			ID:          it.ID,
			InvoiceID:   it.InvoiceID,
			ProductID:   deref(it.ProductID),
			WarehouseID: deref(it.WarehouseID),
			Description: it.Description,
			Type:        entity.ItemType(it.Type),
			Quantity:    it.Quantity,
			Length:      it.Length,
			Width:       it.Width,
			Height:      it.Height,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			TaxRate:     it.TaxRate,
			Total:       it.Total,
			Rubrica:     it.Rubrica,
		})
	}
	return out, nil
}

func toInvoiceRow(inv *entity.Invoice) invoiceRow {
	return invoiceRow{
		ID:                  inv.ID,
		CompanyID:           inv.CompanyID,
		Type:                string(inv.Type),
		SeriesID:            nullIfEmpty(inv.SeriesID),
		Number:              nullIfEmpty(inv.Number),
		Date:                inv.Date,
		DueDate:             inv.DueDate,
		AccountingDate:      inv.AccountingDate,
		SystemEntryDate:     inv.SystemEntryDate,
		ClientID:            nullIfEmpty(inv.ClientID),
		ClientNIF:           inv.ClientNIF,
		ClientName:          inv.ClientName,
		ReferenceID:         nullIfEmpty(inv.ReferenceID),
		Subtotal:            inv.Subtotal,
		GlobalDiscount:      inv.GlobalDiscount,
		GlobalDiscountValue: inv.GlobalDiscountValue,
		TaxAmount:           inv.TaxAmount,
		WithholdingEnabled:  inv.WithholdingEnabled,
		WithholdingAmount:   inv.WithholdingAmount,
		RetentionType:       string(inv.RetentionType),
		RetentionAmount:     inv.RetentionAmount,
		Total:               inv.Total,
		Currency:            inv.Currency,
		ExchangeRate:        inv.ExchangeRate,
		ContraValue:         inv.ContraValue,
		Status:              string(inv.Status),
		IsCertified:         inv.IsCertified,
		Hash:                inv.Hash,
		PaymentMethod:       inv.PaymentMethod,
		CashRegisterID:      nullIfEmpty(inv.CashRegisterID),
		CancelReason:        inv.CancelReason,
		CancelledAt:         inv.CancelledAt,
		CreatedBy:           inv.CreatedBy,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
	}
}

func (row invoiceRow) toEntity() entity.Invoice {
	return entity.Invoice{
		ID:                  row.ID,
		CompanyID:           row.CompanyID,
		Type:                entity.InvoiceType(row.Type),
		SeriesID:            deref(row.SeriesID),
		Number:              deref(row.Number),
		Date:                row.Date,
		DueDate:             row.DueDate,
		AccountingDate:      row.AccountingDate,
		SystemEntryDate:     row.SystemEntryDate,
		ClientID:            deref(row.ClientID),
		ClientNIF:           row.ClientNIF,
		ClientName:          row.ClientName,
		ReferenceID:         deref(row.ReferenceID),
		Subtotal:            row.Subtotal,
		GlobalDiscount:      row.GlobalDiscount,
		GlobalDiscountValue: row.GlobalDiscountValue,
		TaxAmount:           row.TaxAmount,
		WithholdingEnabled:  row.WithholdingEnabled,
		WithholdingAmount:   row.WithholdingAmount,
		RetentionType:       entity.RetentionType(row.RetentionType),
		RetentionAmount:     row.RetentionAmount,
		Total:               row.Total,
		Currency:            row.Currency,
		ExchangeRate:        row.ExchangeRate,
		ContraValue:         row.ContraValue,
		Status:              entity.InvoiceStatus(row.Status),
		IsCertified:         row.IsCertified,
		Hash:                row.Hash,
		PaymentMethod:       row.PaymentMethod,
		CashRegisterID:      deref(row.CashRegisterID),
		CancelReason:        row.CancelReason,
		CancelledAt:         row.CancelledAt,
		CreatedBy:           row.CreatedBy,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}
