package http

import (
	"errors"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	fiscal "github.com/jhoicas/Faturacao-api/internal/domain/billing"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número: gt=0 / gte=0 funcionan sobre importes.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate decodifica el cuerpo JSON y aplica las etiquetas validate.
// Si devuelve false la respuesta ya está escrita.
func bindAndValidate(c *fiber.Ctx, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return validateStruct(c, req)
}

// bindQuery igual que bindAndValidate pero sobre la query string.
func bindQuery(c *fiber.Ctx, req any) (bool, error) {
	if err := c.QueryParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return validateStruct(c, req)
}

func validateStruct(c *fiber.Ctx, req any) (bool, error) {
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		reasons := make([]string, 0, len(ve))
		for _, fe := range ve {
			reasons = append(reasons, fe.Namespace()+": "+fe.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Reasons: reasons,
		})
	}
	return true, nil
}

// requireCompany responde 401 si el token no dejó empresa en el contexto.
func requireCompany(c *fiber.Ctx) (string, bool, error) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return "", false, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return companyID, true, nil
}

// respondError traduce errores de dominio a códigos HTTP. Los errores no
// reconocidos se registran y se devuelven como 500 sin detalle interno.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	var verr *fiscal.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el documento no puede certificarse", Reasons: verr.Reasons})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrInvalidTransfer),
		errors.Is(err, domain.ErrSeriesYearMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyCertified),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrDocumentImmutable),
		errors.Is(err, domain.ErrSeriesInactive),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}

// RequestLogger registra método, ruta, estado y latencia de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("company_id", GetCompanyID(c)).
			Msg("request")
		return err
	}
}

