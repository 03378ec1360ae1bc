package agt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Faturacao-api/pkg/agt"
)

func TestValidateNIF(t *testing.T) {
	cases := []struct {
		nif   string
		valid bool
	}{
		{"5417012345", true},
		{"999999999", true},
		{"004512345LA041", true},
		{" 5417012345 ", true},
		{"", false},
		{"12345", false},
		{"54170123AB", false},
		{"004512345L1041", false},
	}
	for _, c := range cases {
		err := agt.ValidateNIF(c.nif)
		if c.valid {
			assert.NoError(t, err, "NIF %q debería ser válido", c.nif)
		} else {
			assert.Error(t, err, "NIF %q debería ser inválido", c.nif)
		}
	}
}

func TestIsConsumerFinal(t *testing.T) {
	assert.True(t, agt.IsConsumerFinal(""))
	assert.True(t, agt.IsConsumerFinal("999999999"))
	assert.False(t, agt.IsConsumerFinal("5417012345"))
}

func TestTaxCode(t *testing.T) {
	assert.Equal(t, "NOR", agt.TaxCode(decimal.NewFromInt(14)))
	assert.Equal(t, "RED", agt.TaxCode(decimal.NewFromInt(7)))
	assert.Equal(t, "RED", agt.TaxCode(decimal.NewFromInt(5)))
	assert.Equal(t, "ISE", agt.TaxCode(decimal.Zero))
	assert.Equal(t, "OUT", agt.TaxCode(decimal.NewFromInt(10)))
	assert.False(t, agt.IsStandardTaxRate(decimal.NewFromInt(10)))
	assert.True(t, agt.IsStandardTaxRate(decimal.RequireFromString("14.00")))
}
