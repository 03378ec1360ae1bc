package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
)

// DashboardHandler maneja el resumen del mes.
type DashboardHandler struct {
	uc  reportService
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc reportService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve vendas certificadas, IVA, retenções e imposto de selo del período.
// GET /api/dashboard/summary
//
// Sin parámetros se usa el mes en curso; ?year=&month= eligen otro período.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var q dto.PeriodQuery
	if c.Query("year") != "" {
		if ok, err := bindQuery(c, &q); !ok {
			return err
		}
	}
	summary, err := h.uc.Dashboard(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
