package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// BaseCurrency moeda de contabilización.
const BaseCurrency = "AOA"

// ExchangeRates tabla de câmbio fija (política de la empresa, no cotización).
type ExchangeRates map[string]decimal.Decimal

// DefaultExchangeRates valores históricos del sistema.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		"AOA": decimal.NewFromInt(1),
		"USD": decimal.NewFromInt(850),
		"EUR": decimal.NewFromInt(920),
	}
}

// Rate tasa para el código (sin distinguir mayúsculas).
func (r ExchangeRates) Rate(code string) (decimal.Decimal, error) {
	rate, ok := r[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, code)
	}
	return rate, nil
}

// With devuelve una copia con la tasa sobrescrita.
func (r ExchangeRates) With(code string, rate decimal.Decimal) ExchangeRates {
	out := make(ExchangeRates, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[strings.ToUpper(code)] = rate
	return out
}

// ApplyCurrency asigna moneda y tasa al documento y recalcula el contravalor.
func ApplyCurrency(inv *entity.Invoice, code string, rates ExchangeRates) error {
	if err := EnsureEditable(inv); err != nil {
		return err
	}
	rate, err := rates.Rate(code)
	if err != nil {
		return err
	}
	inv.Currency = strings.ToUpper(strings.TrimSpace(code))
	inv.ExchangeRate = rate
	Apply(inv, Recompute(inv))
	return nil
}
