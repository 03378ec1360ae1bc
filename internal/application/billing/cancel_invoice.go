package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/accounts"
	fiscal "github.com/jhoicas/Faturacao-api/internal/domain/billing"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

// CancelInvoiceUseCase anula un documento. El registro se conserva y, si
// estaba certificado, se lança la contrapartida en la conta del cliente.
type CancelInvoiceUseCase struct {
	txRunner    BillingTxRunner
	invalidator ReportInvalidator
	log         zerolog.Logger
	now         func() time.Time
}

// NewCancelInvoiceUseCase construye el caso de uso. invalidator puede ser nil.
func NewCancelInvoiceUseCase(txRunner BillingTxRunner, invalidator ReportInvalidator, log zerolog.Logger) *CancelInvoiceUseCase {
	return &CancelInvoiceUseCase{txRunner: txRunner, invalidator: invalidator, log: log, now: time.Now}
}

// Cancel anula el documento con el motivo indicado.
func (uc *CancelInvoiceUseCase) Cancel(ctx context.Context, companyID, invoiceID string, in dto.CancelInvoiceRequest) (*dto.InvoiceResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	var inv *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.SeriesRepository,
		partyRepo repository.PartyRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByID(ctx, companyID, invoiceID)
		if err != nil {
			return fmt.Errorf("cargar documento: %w", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := fiscal.Cancel(inv, in.Reason, now); err != nil {
			return err
		}
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return fmt.Errorf("guardar documento: %w", err)
		}
		if !inv.IsCertified {
			return nil
		}
		return postToParty(ctx, partyRepo, companyID, inv.ClientID, accounts.ReversalFor(inv, now))
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("reason", inv.CancelReason).
		Msg("documento anulado")
	if inv.IsCertified {
		invalidate(ctx, uc.invalidator, uc.log, companyID)
	}
	return toInvoiceResponse(inv), nil
}
