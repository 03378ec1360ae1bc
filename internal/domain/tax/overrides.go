package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Overrides valores manuales por código de linha del Modelo 1. La presencia
// de la clave es lo que cuenta: un override de 0 sustituye al calculado.
type Overrides map[string]decimal.Decimal

// Lookup devuelve el override y si existe.
func (o Overrides) Lookup(code string) (decimal.Decimal, bool) {
	if o == nil {
		return decimal.Zero, false
	}
	v, ok := o[code]
	return v, ok
}

// Resolve override si existe, si no el calculado.
func (o Overrides) Resolve(code string, computed decimal.Decimal) (decimal.Decimal, bool) {
	if v, ok := o.Lookup(code); ok {
		return v, true
	}
	return computed, false
}

// Clone copia independiente.
func (o Overrides) Clone() Overrides {
	out := make(Overrides, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// ParseOverride interpreta el texto de un campo manual. Vacío o inválido
// significa "sin override" (ok=false), nunca cero. Acepta "1800000",
// "1800000.50", "1 800 000,50" y "1.800.000,50".
func ParseOverride(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// ParseOverrides aplica ParseOverride a cada campo y descarta los ausentes.
func ParseOverrides(fields map[string]string) Overrides {
	out := make(Overrides, len(fields))
	for code, raw := range fields {
		if v, ok := ParseOverride(raw); ok {
			out[strings.TrimSpace(code)] = v
		}
	}
	return out
}
