package inventory

import (
	"context"
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
)

type fakeInvoices struct{ list []entity.Invoice }

func (f *fakeInvoices) Create(context.Context, *entity.Invoice) error { return nil }
func (f *fakeInvoices) Update(context.Context, *entity.Invoice) error { return nil }
func (f *fakeInvoices) GetByID(context.Context, string, string) (*entity.Invoice, error) {
	return nil, nil
}
func (f *fakeInvoices) List(context.Context, string, repository.DocumentFilter) ([]entity.Invoice, error) {
	return f.list, nil
}

type fakePurchases struct{ list []entity.Purchase }

func (f *fakePurchases) List(context.Context, string, repository.DocumentFilter) ([]entity.Purchase, error) {
	return f.list, nil
}

type fakeAdjustments struct{ list []entity.StockMovement }

func (f *fakeAdjustments) Create(_ context.Context, m *entity.StockMovement) error {
	f.list = append(f.list, *m)
	return nil
}

func (f *fakeAdjustments) List(context.Context, string) ([]entity.StockMovement, error) {
	return f.list, nil
}

type fakeProducts struct {
	list    []entity.Product
	updates map[string]decimal.Decimal
}

func (f *fakeProducts) ListByCompany(context.Context, string) ([]entity.Product, error) {
	return f.list, nil
}

func (f *fakeProducts) UpdateStockCache(_ context.Context, id string, stock decimal.Decimal) error {
	f.updates[id] = stock
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].Stock = stock
		}
	}
	return nil
}

type fakeWarehouses struct{}

func (fakeWarehouses) ListByCompany(context.Context, string) ([]entity.Warehouse, error) {
	return []entity.Warehouse{{ID: "w1", Name: "Central"}, {ID: "w0", Name: "Antigo", Closed: true}}, nil
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(n int) time.Time { return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC) }

type env struct {
	uc       *UseCase
	products *fakeProducts
	adj      *fakeAdjustments
}

func newEnv() *env {
	purchases := []entity.Purchase{{
		ID: "p1", Type: entity.PurchaseTypeFT, Number: "FT F/1", Date: day(1), Status: entity.PurchaseStatusPaid,
		Items: []entity.PurchaseItem{{ProductID: "cim", WarehouseID: "w1", Type: entity.ItemTypeProduct, Quantity: d(100), UnitPrice: d(2000)}},
	}}
	invoices := []entity.Invoice{{
		ID: "i1", Type: entity.InvoiceTypeFT, Number: "FT A2024/1", Date: day(2), IsCertified: true, Status: entity.InvoiceStatusPending,
		Items: []entity.InvoiceItem{
			{ProductID: "cim", WarehouseID: "w1", Type: entity.ItemTypeProduct, Quantity: d(30)},
			{ProductID: "fer", WarehouseID: "w1", Type: entity.ItemTypeProduct, Quantity: d(5)},
		},
	}}
	e := &env{
		products: &fakeProducts{
			list: []entity.Product{
				{ID: "cim", Name: "Cimento", Type: entity.ItemTypeProduct, Stock: d(70), MinStock: d(80)},
				{ID: "fer", Name: "Ferro", Type: entity.ItemTypeProduct, Stock: d(0)},
				{ID: "srv", Name: "Montagem", Type: entity.ItemTypeService},
			},
			updates: map[string]decimal.Decimal{},
		},
		adj: &fakeAdjustments{},
	}
	e.uc = NewUseCase(&fakeInvoices{list: invoices}, &fakePurchases{list: purchases}, e.adj, e.products, fakeWarehouses{}, zerolog.New(io.Discard))
	e.uc.now = func() time.Time { return day(3) }
	return e
}

func TestStock_SaldosAlertasYReposicion(t *testing.T) {
	e := newEnv()

	res, err := e.uc.Stock(context.Background(), "co-1")

	require.NoError(t, err)
	require.Len(t, res.Balances, 2)
	assert.Equal(t, "cim", res.Balances[0].ProductID)
	assert.True(t, res.Balances[0].Balance.Equal(d(70)))
	assert.True(t, res.Balances[0].Value.Equal(d(140000)))
	require.Len(t, res.Alerts, 1)
	assert.Equal(t, "fer", res.Alerts[0].ProductID)
	require.Len(t, res.Drifts, 1)
	assert.Equal(t, "fer", res.Drifts[0].ProductID)
	require.Len(t, res.Replenishment, 1)
	// 80 × 1,5 − 70
	assert.True(t, res.Replenishment[0].SuggestedQty.Equal(d(50)))
	assert.True(t, res.Replenishment[0].EstimatedCost.Equal(d(100000)))
}

func TestRegisterAdjustment_ActualizaCache(t *testing.T) {
	e := newEnv()

	res, err := e.uc.RegisterAdjustment(context.Background(), "co-1", "u1", dto.StockAdjustmentRequest{
		ProductID: "fer", WarehouseID: "w1", Type: "ENTRY", Quantity: d(5), Notes: "inventário físico",
	})

	require.NoError(t, err)
	assert.True(t, res.Balance.IsZero())
	assert.True(t, e.products.updates["fer"].IsZero())
	require.Len(t, e.adj.list, 1)
	assert.Equal(t, "u1", e.adj.list[0].CreatedBy)
}

func TestRegisterAdjustment_Rechazos(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.uc.RegisterAdjustment(ctx, "co-1", "u1", dto.StockAdjustmentRequest{ProductID: "srv", WarehouseID: "w1", Type: "ENTRY", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.RegisterAdjustment(ctx, "co-1", "u1", dto.StockAdjustmentRequest{ProductID: "xxx", WarehouseID: "w1", Type: "ENTRY", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.RegisterAdjustment(ctx, "co-1", "u1", dto.StockAdjustmentRequest{ProductID: "cim", WarehouseID: "w9", Type: "EXIT", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.RegisterAdjustment(ctx, "co-1", "u1", dto.StockAdjustmentRequest{ProductID: "cim", WarehouseID: "w0", Type: "ENTRY", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "armazém encerrado")

	_, err = e.uc.RegisterAdjustment(ctx, "co-1", "u1", dto.StockAdjustmentRequest{ProductID: "cim", WarehouseID: "w1", Type: "TRANSFER", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, e.adj.list)
}

func TestReconcileCache(t *testing.T) {
	e := newEnv()

	drifts, err := e.uc.ReconcileCache(context.Background(), "co-1")

	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.True(t, e.products.updates["fer"].Equal(d(-5)))

	again, err := e.uc.ReconcileCache(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Empty(t, again)
}
