// Package money formatea importes para relatórios y mapas fiscales.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("pt-AO"))

// Round2 redondeo de presentación a 2 casas.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format importe con separadores de pt-AO y 2 casas decimales ("1 234 567,89").
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatKz Format con el sufijo de la moeda nacional.
func FormatKz(d decimal.Decimal) string {
	return Format(d) + " Kz"
}
