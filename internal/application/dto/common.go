package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons,omitempty"` // motivos de rechazo de certificación
}

// PeriodQuery query string de los relatórios (?year=2024&month=5).
// Month 0 o ausente = ejercicio completo.
type PeriodQuery struct {
	Year  int `query:"year" validate:"required,min=2000,max=2100"`
	Month int `query:"month" validate:"min=0,max=12"`
}
