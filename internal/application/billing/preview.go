package billing

import (
	"fmt"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	fiscal "github.com/jhoicas/Faturacao-api/internal/domain/billing"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// PreviewUseCase calcula los totales de un borrador sin persistirlo.
type PreviewUseCase struct {
	rates fiscal.ExchangeRates
}

// NewPreviewUseCase construye el caso de uso con la tabla de câmbio configurada.
func NewPreviewUseCase(rates fiscal.ExchangeRates) *PreviewUseCase {
	if len(rates) == 0 {
		rates = fiscal.DefaultExchangeRates()
	}
	return &PreviewUseCase{rates: rates}
}

// Preview devuelve los derivados del documento tal como quedarían al certificar hoy.
func (uc *PreviewUseCase) Preview(in dto.PreviewInvoiceRequest) (*dto.InvoiceTotalsResponse, error) {
	inv, err := draftFromRequest(in)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = fiscal.BaseCurrency
	}
	if err := fiscal.ApplyCurrency(inv, currency, uc.rates); err != nil {
		return nil, err
	}
	t := fiscal.Recompute(inv)
	return &dto.InvoiceTotalsResponse{
		LineTotals:          t.LineTotals,
		Subtotal:            t.Subtotal,
		TaxAmount:           t.TaxAmount,
		GlobalDiscountValue: t.GlobalDiscountValue,
		WithholdingEnabled:  t.WithholdingEnabled,
		WithholdingAmount:   t.WithholdingAmount,
		RetentionAmount:     t.RetentionAmount,
		Total:               t.Total,
		Currency:            inv.Currency,
		ExchangeRate:        inv.ExchangeRate,
		ContraValue:         t.ContraValue,
	}, nil
}

func draftFromRequest(in dto.PreviewInvoiceRequest) (*entity.Invoice, error) {
	tp := entity.InvoiceType(in.Type)
	if !tp.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, in.Type)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el documento no tiene linhas", domain.ErrInvalidInput)
	}
	rt := entity.RetentionType(in.RetentionType)
	switch rt {
	case "":
		rt = entity.RetentionNone
	case entity.RetentionNone, entity.RetentionCat50, entity.RetentionCat100:
	default:
		return nil, fmt.Errorf("%w: cativação %q", domain.ErrInvalidInput, in.RetentionType)
	}
	inv := &entity.Invoice{
		Type:           tp,
		GlobalDiscount: in.GlobalDiscount,
		RetentionType:  rt,
		Status:         entity.InvoiceStatusDraft,
		Items:          make([]entity.InvoiceItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		itemType := entity.ItemType(it.Type)
		if itemType != entity.ItemTypeProduct && itemType != entity.ItemTypeService {
			return nil, fmt.Errorf("%w: tipo de linha %q", domain.ErrInvalidInput, it.Type)
		}
		if !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: quantidade y preço de %q", domain.ErrInvalidInput, it.Description)
		}
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Description: it.Description,
			Type:        itemType,
			Quantity:    it.Quantity,
			Length:      it.Length,
			Width:       it.Width,
			Height:      it.Height,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			TaxRate:     it.TaxRate,
		})
	}
	return inv, nil
}
