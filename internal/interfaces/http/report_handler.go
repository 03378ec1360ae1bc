package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/saft"
)

type reportService interface {
	Modelo7(ctx context.Context, companyID string, q dto.PeriodQuery) (*dto.Modelo7Response, error)
	Modelo1(ctx context.Context, companyID string, year int) (*dto.Modelo1Response, error)
	ReplaceOverrides(ctx context.Context, companyID string, in dto.Modelo1OverridesRequest) (*dto.Modelo1Response, error)
	StampDuty(ctx context.Context, companyID string, q dto.PeriodQuery) (*dto.StampDutyResponse, error)
	Dashboard(ctx context.Context, companyID string, q dto.PeriodQuery) (*dto.DashboardSummaryDTO, error)
	SAFT(ctx context.Context, companyID string, q dto.PeriodQuery) (*saft.Result, error)
}

// ReportHandler declaraciones fiscales y exportación SAF-T.
type ReportHandler struct {
	uc  reportService
	log zerolog.Logger
}

func NewReportHandler(uc reportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Modelo7 godoc
// @Summary      Declaração periódica de IVA (Modelo 7)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year   query     int  true   "ejercicio"
// @Param        month  query     int  false  "mes (0 = ejercicio completo)"
// @Success      200    {object}  dto.Modelo7Response
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/modelo7 [get]
func (h *ReportHandler) Modelo7(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var q dto.PeriodQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.Modelo7(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Modelo1 GET /api/reports/modelo1?year=2024 (con comparativo del año anterior).
func (h *ReportHandler) Modelo1(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	year, convErr := strconv.Atoi(c.Query("year"))
	if convErr != nil || year < 2000 || year > 2100 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year inválido"})
	}
	out, err := h.uc.Modelo1(c.Context(), companyID, year)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ReplaceOverrides PUT /api/reports/modelo1/overrides
func (h *ReportHandler) ReplaceOverrides(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var in dto.Modelo1OverridesRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.ReplaceOverrides(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *ReportHandler) StampDuty(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var q dto.PeriodQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.StampDuty(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// SAFT descarga el ficheiro SAF-T (AO) del período en Windows-1252.
// El digest SHA-256 del XML canónico va en la cabecera X-SAFT-Digest.
// GET /api/reports/saft?year=2024&month=5
func (h *ReportHandler) SAFT(c *fiber.Ctx) error {
	companyID, ok, err := requireCompany(c)
	if !ok {
		return err
	}
	var q dto.PeriodQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	res, err := h.uc.SAFT(c.Context(), companyID, q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=windows-1252")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.FileName+`"`)
	c.Set("X-SAFT-Digest", res.Digest)
	return c.Send(res.XML)
}
