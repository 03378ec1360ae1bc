package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
)

type invoicePreviewer interface {
	Preview(in dto.PreviewInvoiceRequest) (*dto.InvoiceTotalsResponse, error)
}

type invoiceCertifier interface {
	Certify(ctx context.Context, companyID, userID, invoiceID string, in dto.CertifyInvoiceRequest) (*dto.InvoiceResponse, error)
}

type invoiceCanceller interface {
	Cancel(ctx context.Context, companyID, invoiceID string, in dto.CancelInvoiceRequest) (*dto.InvoiceResponse, error)
}

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	preview invoicePreviewer
	certify invoiceCertifier
	cancel  invoiceCanceller
	log     zerolog.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(preview invoicePreviewer, certify invoiceCertifier, cancel invoiceCanceller, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{preview: preview, certify: certify, cancel: cancel, log: log}
}

// Preview godoc
// @Summary      Calcular totales de un borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PreviewInvoiceRequest  true  "tipo, moneda, desconto global, cativação y linhas"
// @Success      200   {object}  dto.InvoiceTotalsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewInvoiceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.preview.Preview(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Certify godoc
// @Summary      Certificar documento
// @Description  Asigna número de la série, calcula el hash encadenado y lança la conta corrente del cliente.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true   "ID del documento"
// @Param        body  body      dto.CertifyInvoiceRequest  false  "número y hash manuales (séries MANUAL)"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/certify [post]
func (h *InvoiceHandler) Certify(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var in dto.CertifyInvoiceRequest
	if len(c.Body()) > 0 {
		if ok, err := bindAndValidate(c, &in); !ok {
			return err
		}
	}
	out, err := h.certify.Certify(c.Context(), companyID, GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel anula un documento (motivo obligatorio). El registro se conserva.
// POST /api/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var in dto.CancelInvoiceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.cancel.Cancel(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
