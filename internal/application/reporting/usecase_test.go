package reporting

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/saft"
)

type fakeInvoices struct {
	list  []entity.Invoice
	calls int
}

func (f *fakeInvoices) Create(context.Context, *entity.Invoice) error { return nil }
func (f *fakeInvoices) Update(context.Context, *entity.Invoice) error { return nil }
func (f *fakeInvoices) GetByID(context.Context, string, string) (*entity.Invoice, error) {
	return nil, nil
}
func (f *fakeInvoices) List(context.Context, string, repository.DocumentFilter) ([]entity.Invoice, error) {
	f.calls++
	return f.list, nil
}

type fakePurchases struct{ list []entity.Purchase }

func (f *fakePurchases) List(context.Context, string, repository.DocumentFilter) ([]entity.Purchase, error) {
	return f.list, nil
}

type fakePayroll struct{}

func (fakePayroll) ListByYears(context.Context, string, int, int) ([]entity.SalarySlip, error) {
	return nil, nil
}

type fakeOverrides struct{ stored map[int]tax.Overrides }

func (f *fakeOverrides) Get(_ context.Context, _ string, year int) (tax.Overrides, error) {
	return f.stored[year], nil
}

func (f *fakeOverrides) Replace(_ context.Context, _ string, year int, o tax.Overrides) error {
	f.stored[year] = o
	return nil
}

type fakeCompanies struct{ company *entity.Company }

func (f *fakeCompanies) GetByID(context.Context, string) (*entity.Company, error) {
	return f.company, nil
}

// memCache simula Redis serializando a JSON.
type memCache struct {
	versions map[string]int64
	data     map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{versions: map[string]int64{}, data: map[string][]byte{}}
}

func (c *memCache) Version(_ context.Context, companyID string) (int64, error) {
	return c.versions[companyID], nil
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	c.data[key] = raw
	return err
}

func (c *memCache) Invalidate(_ context.Context, companyID string) error {
	c.versions[companyID]++
	return nil
}

type env struct {
	uc        *UseCase
	invoices  *fakeInvoices
	overrides *fakeOverrides
	companies *fakeCompanies
	cache     *memCache
}

func newEnv(regime entity.TaxRegime, invoices ...entity.Invoice) *env {
	return newEnvWithOptions(Options{SimplifiedExemptRate: tax.SimplifiedRate}, regime, invoices...)
}

func newEnvWithOptions(opts Options, regime entity.TaxRegime, invoices ...entity.Invoice) *env {
	e := &env{
		invoices:  &fakeInvoices{list: invoices},
		overrides: &fakeOverrides{stored: map[int]tax.Overrides{}},
		companies: &fakeCompanies{company: &entity.Company{ID: "co-1", Name: "Empresa", NIF: "5417000000", Regime: regime}},
		cache:     newMemCache(),
	}
	e.uc = NewUseCase(e.invoices, &fakePurchases{}, fakePayroll{}, e.overrides, e.companies,
		saft.NewBuilder(), e.cache, opts, zerolog.New(io.Discard))
	e.uc.now = func() time.Time { return time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC) }
	return e
}

func certifiedDoc(id string, tp entity.InvoiceType, rate int64, base int64) entity.Invoice {
	b := decimal.NewFromInt(base)
	tx := b.Mul(decimal.NewFromInt(rate)).Shift(-2)
	return entity.Invoice{
		ID: id, CompanyID: "co-1", Type: tp, Number: string(tp) + " A2024/" + id,
		Date: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), ClientName: "Cliente",
		IsCertified: true, Status: entity.InvoiceStatusPaid,
		Subtotal: b, TaxAmount: tx, Total: b.Add(tx),
		Items: []entity.InvoiceItem{{
			Description: "Artigo", Type: entity.ItemTypeProduct, Quantity: decimal.NewFromInt(1),
			UnitPrice: b, TaxRate: decimal.NewFromInt(rate), Total: b,
		}},
	}
}

func TestModelo7_GeneralYCache(t *testing.T) {
	e := newEnv(entity.RegimeGeneral, certifiedDoc("1", entity.InvoiceTypeFT, 14, 1000))
	q := dto.PeriodQuery{Year: 2024, Month: 5}

	res, err := e.uc.Modelo7(context.Background(), "co-1", q)
	require.NoError(t, err)
	require.NotNil(t, res.General)
	assert.Nil(t, res.Simplified)
	assert.Equal(t, "2024-05", res.Period)
	assert.True(t, res.General.ToPay.Equal(decimal.NewFromInt(140)))

	again, err := e.uc.Modelo7(context.Background(), "co-1", q)
	require.NoError(t, err)
	assert.Equal(t, 1, e.invoices.calls, "la segunda lectura sale de la caché")
	assert.True(t, again.General.ToPay.Equal(decimal.NewFromInt(140)))

	require.NoError(t, e.cache.Invalidate(context.Background(), "co-1"))
	_, err = e.uc.Modelo7(context.Background(), "co-1", q)
	require.NoError(t, err)
	assert.Equal(t, 2, e.invoices.calls)
}

func TestModelo7_Simplificado(t *testing.T) {
	e := newEnv(entity.RegimeSimplified, certifiedDoc("1", entity.InvoiceTypeFR, 7, 1000))

	res, err := e.uc.Modelo7(context.Background(), "co-1", dto.PeriodQuery{Year: 2024, Month: 5})

	require.NoError(t, err)
	require.NotNil(t, res.Simplified)
	// 1070 × 7%
	assert.True(t, res.Simplified.TaxDue.Equal(decimal.RequireFromString("74.9")), res.Simplified.TaxDue.String())
}

func TestModelo7_SimplificadoTaxaIsentaConfigurable(t *testing.T) {
	exempt := certifiedDoc("1", entity.InvoiceTypeFR, 0, 1000)
	q := dto.PeriodQuery{Year: 2024, Month: 5}

	zero := newEnvWithOptions(Options{SimplifiedExemptRate: decimal.Zero}, entity.RegimeSimplified, exempt)
	res, err := zero.uc.Modelo7(context.Background(), "co-1", q)
	require.NoError(t, err)
	require.NotNil(t, res.Simplified)
	assert.True(t, res.Simplified.ExemptRate.IsZero(), res.Simplified.ExemptRate.String())
	assert.True(t, res.Simplified.TaxOnExempt.IsZero(), res.Simplified.TaxOnExempt.String())
	assert.True(t, res.Simplified.TaxDue.IsZero(), res.Simplified.TaxDue.String())

	byDefault := newEnv(entity.RegimeSimplified, exempt)
	res, err = byDefault.uc.Modelo7(context.Background(), "co-1", q)
	require.NoError(t, err)
	assert.True(t, res.Simplified.TaxOnExempt.Equal(decimal.NewFromInt(70)), res.Simplified.TaxOnExempt.String())
}

func TestModelo7_PeriodoInvalidoYEmpresaInexistente(t *testing.T) {
	e := newEnv(entity.RegimeGeneral)

	_, err := e.uc.Modelo7(context.Background(), "co-1", dto.PeriodQuery{Year: 2024, Month: 13})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	e.companies.company = nil
	_, err = e.uc.Modelo7(context.Background(), "co-1", dto.PeriodQuery{Year: 2024, Month: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceOverrides_PersisteEInvalida(t *testing.T) {
	e := newEnv(entity.RegimeGeneral)
	_, err := e.uc.Modelo1(context.Background(), "co-1", 2024)
	require.NoError(t, err)

	res, err := e.uc.ReplaceOverrides(context.Background(), "co-1", dto.Modelo1OverridesRequest{
		Year:   2024,
		Values: map[string]string{"61.1": "1 000,50", "62.2": "", "63": "abc"},
	})

	require.NoError(t, err)
	require.Len(t, e.overrides.stored[2024], 1)
	assert.EqualValues(t, 1, e.cache.versions["co-1"])
	assert.True(t, res.Current.ImpostoPagar.Equal(decimal.RequireFromString("250.125")))
	assert.True(t, res.Prior.ImpostoPagar.IsZero(), "el ejercicio anterior no admite overrides")

	var line dto.Modelo1LineDTO
	for _, l := range res.Current.Lines {
		if l.Code == "61.1" {
			line = l
		}
	}
	assert.True(t, line.Overridden)
	assert.True(t, line.Value.Equal(decimal.RequireFromString("1000.50")))

	cached, err := e.uc.Modelo1(context.Background(), "co-1", 2024)
	require.NoError(t, err)
	assert.True(t, cached.Current.ImpostoPagar.Equal(res.Current.ImpostoPagar))
}

func TestStampDutyYDashboard(t *testing.T) {
	e := newEnv(entity.RegimeGeneral,
		certifiedDoc("1", entity.InvoiceTypeFR, 14, 1000),
		certifiedDoc("2", entity.InvoiceTypeFT, 14, 500),
	)

	stamp, err := e.uc.StampDuty(context.Background(), "co-1", dto.PeriodQuery{Year: 2024, Month: 5})
	require.NoError(t, err)
	require.Len(t, stamp.Rows, 1)
	assert.True(t, stamp.TotalTax.Equal(decimal.RequireFromString("11.4")))

	dash, err := e.uc.Dashboard(context.Background(), "co-1", dto.PeriodQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2024-05", dash.Period)
	assert.Equal(t, 2, dash.Documents)
	assert.True(t, dash.NetSales.Equal(decimal.NewFromInt(1500)))
	assert.NotEmpty(t, dash.NetSalesText)
}

func TestSAFT_GeneraFicheiro(t *testing.T) {
	e := newEnv(entity.RegimeGeneral, certifiedDoc("1", entity.InvoiceTypeFT, 14, 1000))

	res, err := e.uc.SAFT(context.Background(), "co-1", dto.PeriodQuery{Year: 2024, Month: 5})

	require.NoError(t, err)
	assert.NotEmpty(t, res.XML)
	assert.NotEmpty(t, res.Digest)
	assert.Contains(t, res.FileName, "2024-05")
}
