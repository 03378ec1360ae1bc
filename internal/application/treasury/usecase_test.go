package treasury

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

type fakeCash struct {
	registers []entity.CashRegister
	movements []entity.CashMovement
	writes    int
}

func (f *fakeCash) ListRegisters(context.Context, string) ([]entity.CashRegister, error) {
	return f.registers, nil
}

func (f *fakeCash) CreateMovements(_ context.Context, ms []entity.CashMovement) error {
	f.writes++
	f.movements = append(f.movements, ms...)
	return nil
}

func (f *fakeCash) ListMovements(context.Context, string) ([]entity.CashMovement, error) {
	return f.movements, nil
}

type fakeInvoices struct{ list []entity.Invoice }

func (f *fakeInvoices) Create(context.Context, *entity.Invoice) error { return nil }
func (f *fakeInvoices) Update(context.Context, *entity.Invoice) error { return nil }
func (f *fakeInvoices) GetByID(context.Context, string, string) (*entity.Invoice, error) {
	return nil, nil
}
func (f *fakeInvoices) List(context.Context, string, repository.DocumentFilter) ([]entity.Invoice, error) {
	return f.list, nil
}

type fakePurchases struct{}

func (fakePurchases) List(context.Context, string, repository.DocumentFilter) ([]entity.Purchase, error) {
	return nil, nil
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUseCase() (*UseCase, *fakeCash) {
	cash := &fakeCash{registers: []entity.CashRegister{
		{ID: "cx1", Name: "Loja", InitialBalance: d(1000), IsActive: true},
		{ID: "cx2", Name: "Banco", IsActive: true},
		{ID: "cx3", Name: "Antiga", IsActive: false},
	}}
	invoices := &fakeInvoices{list: []entity.Invoice{{
		ID: "i1", Type: entity.InvoiceTypeFR, Number: "FR A2024/1", IsCertified: true,
		Status: entity.InvoiceStatusPaid, CashRegisterID: "cx1", PaymentMethod: "NU", Total: d(500),
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}}}
	uc := NewUseCase(cash, invoices, fakePurchases{}, zerolog.New(io.Discard))
	uc.now = func() time.Time { return time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC) }
	return uc, cash
}

func TestTransfer_ConservaElTotal(t *testing.T) {
	uc, cash := newUseCase()
	ctx := context.Background()

	legs, err := uc.Transfer(ctx, "co-1", "u1", dto.CashTransferRequest{FromRegisterID: "cx1", ToRegisterID: "cx2", Amount: d(300)})
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, legs[0].TransferID, legs[1].TransferID)
	assert.Equal(t, 1, cash.writes, "las dos pernas en una sola escritura")

	res, err := uc.Registers(ctx, "co-1")
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
	assert.True(t, res.Registers[0].Balance.Equal(d(1200)))
	assert.True(t, res.Registers[1].Balance.Equal(d(300)))

	total := decimal.Zero
	for _, r := range res.Registers {
		total = total.Add(r.Balance)
	}
	assert.True(t, total.Equal(d(1500)))
}

func TestTransfer_Rechazos(t *testing.T) {
	uc, cash := newUseCase()
	ctx := context.Background()

	_, err := uc.Transfer(ctx, "co-1", "u1", dto.CashTransferRequest{FromRegisterID: "cx1", ToRegisterID: "cx1", Amount: d(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)

	_, err = uc.Transfer(ctx, "co-1", "u1", dto.CashTransferRequest{FromRegisterID: "cx1", ToRegisterID: "cx9", Amount: d(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Transfer(ctx, "co-1", "u1", dto.CashTransferRequest{FromRegisterID: "cx1", ToRegisterID: "cx3", Amount: d(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Transfer(ctx, "co-1", "u1", dto.CashTransferRequest{FromRegisterID: "cx1", ToRegisterID: "cx2", Amount: d(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
	assert.Zero(t, cash.writes)
}

func TestRegisterMovement(t *testing.T) {
	uc, cash := newUseCase()
	ctx := context.Background()

	res, err := uc.RegisterMovement(ctx, "co-1", "u1", dto.CashMovementRequest{CashRegisterID: "cx2", Type: "EXIT", Amount: d(50)})
	require.NoError(t, err)
	assert.Equal(t, "EXIT", res.Type)
	require.Len(t, cash.movements, 1)
	assert.Equal(t, "co-1", cash.movements[0].CompanyID)
	assert.Equal(t, entity.CashSourceManual, cash.movements[0].Source)

	_, err = uc.RegisterMovement(ctx, "co-1", "u1", dto.CashMovementRequest{CashRegisterID: "cx2", Type: "TRANSFER_IN", Amount: d(50)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisters_PernaHuerfana(t *testing.T) {
	uc, cash := newUseCase()
	cash.movements = []entity.CashMovement{{ID: "m1", Type: entity.CashTransferOut, TransferID: "t1", CashRegisterID: "cx1", Amount: d(10)}}

	res, err := uc.Registers(context.Background(), "co-1")

	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "t1", res.Issues[0].TransferID)
}
