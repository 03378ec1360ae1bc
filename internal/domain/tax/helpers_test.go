package tax_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// ── constructores de fixtures ───────────────────────────────────────────────

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// certified documento certificado con una línea cuyo total ya está calculado.
func certified(id string, tp entity.InvoiceType, date time.Time, itemType entity.ItemType, base, rate string) entity.Invoice {
	b, r := dec(base), dec(rate)
	tax := b.Mul(r).Div(decimal.NewFromInt(100))
	return entity.Invoice{
		ID:          id,
		Type:        tp,
		Number:      string(tp) + " A/" + id,
		Date:        date,
		ClientID:    "c1",
		IsCertified: true,
		Status:      entity.InvoiceStatusPending,
		Items: []entity.InvoiceItem{{
			Type: itemType, Quantity: decimal.NewFromInt(1), UnitPrice: b, TaxRate: r, Total: b,
		}},
		Subtotal:  b,
		TaxAmount: tax,
		Total:     b.Add(tax),
	}
}

func purchase(id string, tp entity.PurchaseType, date time.Time, status entity.PurchaseStatus, subtotal, tax string) entity.Purchase {
	s, t := dec(subtotal), dec(tax)
	return entity.Purchase{
		ID: id, Type: tp, Number: "F-" + id, Date: date, Status: status,
		SupplierNIF: "5000000001", Subtotal: s, TaxAmount: t, Total: s.Add(t),
	}
}

func assertDec(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	want := dec(expected)
	if !assert.True(t, want.Equal(got), msgAndArgs...) {
		t.Logf("esperado %s, obtenido %s", want, got)
	}
}
