package entity

import "time"

// TaxRegime régimen de IVA del contribuyente.
type TaxRegime string

const (
	RegimeGeneral    TaxRegime = "GERAL"
	RegimeSimplified TaxRegime = "SIMPLIFICADO"
)

// Company empresa emisora (tenant).
type Company struct {
	ID        string
	Name      string
	NIF       string
	Address   string
	City      string
	Phone     string
	Email     string
	Regime    TaxRegime
	CreatedAt time.Time
	UpdatedAt time.Time
}
