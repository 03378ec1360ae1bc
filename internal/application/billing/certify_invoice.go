package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/accounts"
	fiscal "github.com/jhoicas/Faturacao-api/internal/domain/billing"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

// CertifyInvoiceUseCase certifica un borrador: numeração, hash encadeado,
// lançamento en la conta del cliente y avance de la série en una sola transacción.
type CertifyInvoiceUseCase struct {
	txRunner    BillingTxRunner
	signer      fiscal.Signer
	invalidator ReportInvalidator
	log         zerolog.Logger
	now         func() time.Time
}

// NewCertifyInvoiceUseCase construye el caso de uso. invalidator puede ser nil.
func NewCertifyInvoiceUseCase(txRunner BillingTxRunner, signer fiscal.Signer, invalidator ReportInvalidator, log zerolog.Logger) *CertifyInvoiceUseCase {
	return &CertifyInvoiceUseCase{
		txRunner:    txRunner,
		signer:      signer,
		invalidator: invalidator,
		log:         log,
		now:         time.Now,
	}
}

// Certify carga documento y série (bloqueada), certifica y persiste. Si
// cualquier paso falla la transacción hace rollback y nada cambia.
func (uc *CertifyInvoiceUseCase) Certify(ctx context.Context, companyID, userID, invoiceID string, in dto.CertifyInvoiceRequest) (*dto.InvoiceResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	manual := fiscal.ManualNumbering{Number: in.ManualNumber, Hash: in.ManualHash}

	var inv *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		seriesRepo repository.SeriesRepository,
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

		var series *entity.DocumentSeries
		if inv.SeriesID != "" {
			series, err = seriesRepo.GetByIDForUpdate(ctx, companyID, inv.SeriesID)
			if err != nil {
				return fmt.Errorf("cargar série: %w", err)
			}
		}

		if err := fiscal.Certify(inv, series, userID, manual, uc.signer, now); err != nil {
			return err
		}
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return fmt.Errorf("guardar documento: %w", err)
		}
		if series != nil && series.Type != entity.SeriesManual {
			if err := seriesRepo.UpdateSequence(ctx, series); err != nil {
				return fmt.Errorf("avanzar série: %w", err)
			}
		}
		return postToParty(ctx, partyRepo, companyID, inv.ClientID, accounts.PostingFor(inv, now))
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("total", inv.Total.StringFixed(2)).
		Msg("documento certificado")
	invalidate(ctx, uc.invalidator, uc.log, companyID)
	return toInvoiceResponse(inv), nil
}

// postToParty añade los lançamentos y guarda el saldo derivado. Documentos
// sin cliente registrado (consumidor final) no tienen conta corrente.
func postToParty(ctx context.Context, partyRepo repository.PartyRepository, companyID, partyID string, txs []entity.AccountTransaction) error {
	if partyID == "" || len(txs) == 0 {
		return nil
	}
	party, err := partyRepo.GetByID(ctx, companyID, partyID)
	if err != nil {
		return fmt.Errorf("cargar cliente: %w", err)
	}
	if party == nil {
		return nil
	}
	for i := range txs {
		txs[i].ID = uuid.New().String()
	}
	if err := partyRepo.AppendTransactions(ctx, txs); err != nil {
		return fmt.Errorf("lançar conta corrente: %w", err)
	}
	party.Transactions = append(party.Transactions, txs...)
	accounts.Refresh(party)
	if err := partyRepo.UpdateBalance(ctx, party.ID, party.AccountBalance); err != nil {
		return fmt.Errorf("actualizar saldo: %w", err)
	}
	return nil
}

func invalidate(ctx context.Context, inv ReportInvalidator, log zerolog.Logger, companyID string) {
	if inv == nil {
		return
	}
	if err := inv.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché de relatórios")
	}
}
