package repository

import (
	"context"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create guarda cabecera y líneas de un borrador.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update persiste totales, numeración, hash y estado (certificación y anulación).
	Update(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	// List devuelve documentos con sus líneas, ordenados por fecha.
	List(ctx context.Context, companyID string, f DocumentFilter) ([]entity.Invoice, error)
}
