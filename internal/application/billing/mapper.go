package billing

import (
	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                 inv.ID,
		Type:               string(inv.Type),
		Number:             inv.Number,
		Date:               inv.Date.Format("2006-01-02"),
		ClientName:         inv.ClientName,
		Subtotal:           inv.Subtotal,
		TaxAmount:          inv.TaxAmount,
		WithholdingEnabled: inv.WithholdingEnabled,
		WithholdingAmount:  inv.WithholdingAmount,
		RetentionAmount:    inv.RetentionAmount,
		Total:              inv.Total,
		Currency:           inv.Currency,
		ContraValue:        inv.ContraValue,
		Status:             string(inv.Status),
		IsCertified:        inv.IsCertified,
		Hash:               inv.Hash,
		CancelReason:       inv.CancelReason,
	}
}
