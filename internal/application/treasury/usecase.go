// Package treasury contiene los casos de uso de caixa: saldos derivados,
// lançamentos manuales y transferencias entre caixas.
package treasury

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
	"github.com/jhoicas/Faturacao-api/internal/domain/treasury"
)

// UseCase tesouraria de una empresa.
type UseCase struct {
	cashRepo     repository.CashRepository
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(cashRepo repository.CashRepository, invoiceRepo repository.InvoiceRepository, purchaseRepo repository.PurchaseRepository, log zerolog.Logger) *UseCase {
	return &UseCase{cashRepo: cashRepo, invoiceRepo: invoiceRepo, purchaseRepo: purchaseRepo, log: log, now: time.Now}
}

// Registers saldo de cada caixa y pernas de transferencia descuadradas.
func (uc *UseCase) Registers(ctx context.Context, companyID string) (*dto.CashRegistersResponse, error) {
	registers, err := uc.cashRepo.ListRegisters(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar caixas: %w", err)
	}
	invoices, err := uc.invoiceRepo.List(ctx, companyID, repository.DocumentFilter{})
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	purchases, err := uc.purchaseRepo.List(ctx, companyID, repository.DocumentFilter{})
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	manual, err := uc.cashRepo.ListMovements(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	balances := treasury.Build(treasury.LedgerInput{
		Registers: registers,
		Invoices:  invoices,
		Purchases: purchases,
		Manual:    manual,
	})
	out := &dto.CashRegistersResponse{Registers: make([]dto.RegisterBalanceDTO, 0, len(balances))}
	for _, b := range balances {
		out.Registers = append(out.Registers, dto.RegisterBalanceDTO{
			CashRegisterID: b.CashRegisterID,
			Name:           b.Name,
			InitialBalance: b.InitialBalance,
			Inflows:        b.Inflows,
			Outflows:       b.Outflows,
			Balance:        b.Balance,
		})
	}
	for _, issue := range treasury.VerifyTransferPairing(manual) {
		out.Issues = append(out.Issues, dto.PairingIssueDTO{TransferID: issue.TransferID, Reason: issue.Reason})
		uc.log.Warn().Str("company_id", companyID).Str("transfer_id", issue.TransferID).Msg(issue.Reason)
	}
	return out, nil
}

// RegisterMovement lançamento manual de entrada o salida.
func (uc *UseCase) RegisterMovement(ctx context.Context, companyID, userID string, in dto.CashMovementRequest) (*dto.CashMovementResponse, error) {
	if err := uc.ensureRegisters(ctx, companyID, in.CashRegisterID); err != nil {
		return nil, err
	}
	m, err := treasury.NewManualMovement(in.CashRegisterID, entity.CashMovementType(in.Type), in.Amount, uc.now(), in.Description, userID)
	if err != nil {
		return nil, err
	}
	m.CompanyID = companyID
	if err := uc.cashRepo.CreateMovements(ctx, []entity.CashMovement{m}); err != nil {
		return nil, fmt.Errorf("guardar movimiento: %w", err)
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("cash_register_id", m.CashRegisterID).
		Str("type", string(m.Type)).
		Str("amount", m.Amount.StringFixed(2)).
		Msg("movimiento de caixa registrado")
	res := toMovementResponse(m)
	return &res, nil
}

// Transfer guarda las dos pernas en una sola escritura.
func (uc *UseCase) Transfer(ctx context.Context, companyID, userID string, in dto.CashTransferRequest) ([]dto.CashMovementResponse, error) {
	if err := uc.ensureRegisters(ctx, companyID, in.FromRegisterID, in.ToRegisterID); err != nil {
		return nil, err
	}
	legs, err := treasury.NewTransfer(in.FromRegisterID, in.ToRegisterID, in.Amount, uc.now(), in.Description, userID)
	if err != nil {
		return nil, err
	}
	legs[0].CompanyID, legs[1].CompanyID = companyID, companyID
	if err := uc.cashRepo.CreateMovements(ctx, legs[:]); err != nil {
		return nil, fmt.Errorf("guardar transferencia: %w", err)
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("transfer_id", legs[0].TransferID).
		Str("from", in.FromRegisterID).
		Str("to", in.ToRegisterID).
		Str("amount", in.Amount.StringFixed(2)).
		Msg("transferencia entre caixas registrada")
	return []dto.CashMovementResponse{toMovementResponse(legs[0]), toMovementResponse(legs[1])}, nil
}

// ensureRegisters comprueba que las caixas existen en la empresa y están activas.
func (uc *UseCase) ensureRegisters(ctx context.Context, companyID string, ids ...string) error {
	registers, err := uc.cashRepo.ListRegisters(ctx, companyID)
	if err != nil {
		return fmt.Errorf("listar caixas: %w", err)
	}
	active := make(map[string]bool, len(registers))
	for _, r := range registers {
		active[r.ID] = r.IsActive
	}
	for _, id := range ids {
		isActive, ok := active[id]
		if !ok {
			return domain.ErrNotFound
		}
		if !isActive {
			return fmt.Errorf("%w: caixa %s inactiva", domain.ErrConflict, id)
		}
	}
	return nil
}

func toMovementResponse(m entity.CashMovement) dto.CashMovementResponse {
	return dto.CashMovementResponse{
		ID:             m.ID,
		Type:           string(m.Type),
		Amount:         m.Amount,
		CashRegisterID: m.CashRegisterID,
		TransferID:     m.TransferID,
		Date:           m.Date.Format(time.RFC3339),
	}
}
