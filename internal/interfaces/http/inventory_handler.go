package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
)

type inventoryService interface {
	Stock(ctx context.Context, companyID string) (*dto.StockReportResponse, error)
	RegisterAdjustment(ctx context.Context, companyID, userID string, in dto.StockAdjustmentRequest) (*dto.StockBalanceDTO, error)
	ReconcileCache(ctx context.Context, companyID string) ([]dto.StockDriftDTO, error)
}

// InventoryHandler maneja las peticiones HTTP de stock (protegido).
type InventoryHandler struct {
	uc  inventoryService
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc inventoryService, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Stock godoc
// @Summary      Saldos de stock reconstruidos desde los documentos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	out, err := h.uc.Stock(c.Context(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StockAdjustmentRequest  true  "product_id, warehouse_id, type (ENTRY/EXIT), quantity, unit_cost"
// @Success      201   {object}  dto.StockBalanceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var in dto.StockAdjustmentRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterAdjustment(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reconcile reescribe la caché Product.Stock con el ledger y devuelve las diferencias corregidas.
// POST /api/inventory/reconcile
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	drifts, err := h.uc.ReconcileCache(c.Context(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"corrected": drifts})
}
