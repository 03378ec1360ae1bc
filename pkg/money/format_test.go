package money_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Faturacao-api/pkg/money"
)

func TestFormat(t *testing.T) {
	got := money.Format(decimal.RequireFromString("1234567.891"))

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, got)
	assert.Equal(t, "123456789", digits, "redondeo a 2 casas: %q", got)
	assert.True(t, strings.HasSuffix(got, ",89"), "separador decimal de pt-AO: %q", got)
	assert.True(t, strings.HasSuffix(money.FormatKz(decimal.NewFromInt(5)), " Kz"))
	assert.True(t, money.Round2(decimal.RequireFromString("2.345")).Equal(decimal.RequireFromString("2.35")))
}
