package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrAlreadyCertified   = errors.New("el documento ya está certificado")
	ErrDocumentImmutable  = errors.New("documento certificado: campos no editables")
	ErrAlreadyCancelled   = errors.New("el documento ya está anulado")
	ErrSeriesInactive     = errors.New("la serie no está activa")
	ErrSeriesYearMismatch = errors.New("el año de la serie no coincide con la fecha del documento")
	ErrUnknownCurrency    = errors.New("moneda sin tasa de cambio configurada")
	ErrInvalidTransfer    = errors.New("transferencia inválida")
)
