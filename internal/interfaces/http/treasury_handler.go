package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
)

type treasuryService interface {
	Registers(ctx context.Context, companyID string) (*dto.CashRegistersResponse, error)
	RegisterMovement(ctx context.Context, companyID, userID string, in dto.CashMovementRequest) (*dto.CashMovementResponse, error)
	Transfer(ctx context.Context, companyID, userID string, in dto.CashTransferRequest) ([]dto.CashMovementResponse, error)
}

// TreasuryHandler caixas, movimientos manuales y transferencias.
type TreasuryHandler struct {
	uc  treasuryService
	log zerolog.Logger
}

func NewTreasuryHandler(uc treasuryService, log zerolog.Logger) *TreasuryHandler {
	return &TreasuryHandler{uc: uc, log: log}
}

// Registers GET /api/cash/registers
func (h *TreasuryHandler) Registers(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	out, err := h.uc.Registers(c.Context(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Movement POST /api/cash/movements
func (h *TreasuryHandler) Movement(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var in dto.CashMovementRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterMovement(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer POST /api/cash/transfers. Devuelve las dos pernas.
func (h *TreasuryHandler) Transfer(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var in dto.CashTransferRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	legs, err := h.uc.Transfer(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(legs)
}
