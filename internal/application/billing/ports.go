package billing

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// documentos, séries y conta corrente. La série se bloquea con FOR UPDATE,
// así dos certificaciones concurrentes de la misma série se serializan.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		seriesRepo repository.SeriesRepository,
		partyRepo repository.PartyRepository,
	) error) error
}

// ReportInvalidator descarta los relatórios en caché de la empresa cuando
// cambia un documento certificado.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}
