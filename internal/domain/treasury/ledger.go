// Package treasury: ledger de caixa y transferencias entre caixas.
package treasury

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// LedgerInput caixas, documentos y movimientos manuales.
type LedgerInput struct {
	Registers []entity.CashRegister
	Invoices  []entity.Invoice
	Purchases []entity.Purchase
	Manual    []entity.CashMovement
}

// RegisterBalance saldo derivado de una caixa.
type RegisterBalance struct {
	CashRegisterID string
	Name           string
	InitialBalance decimal.Decimal
	Inflows        decimal.Decimal
	Outflows       decimal.Decimal
	Balance        decimal.Decimal
}

// DeriveMovements movimientos de documentos pagados con caixa y forma de
// pago, más los manuales. Las notas de crédito pagadas son salidas.
func DeriveMovements(in LedgerInput) []entity.CashMovement {
	var out []entity.CashMovement
	for _, inv := range in.Invoices {
		if !inv.IsCertified || inv.Status != entity.InvoiceStatusPaid {
			continue
		}
		if inv.CashRegisterID == "" || inv.PaymentMethod == "" {
			continue
		}
		mt := entity.CashEntry
		if inv.Type.IsCreditNote() {
			mt = entity.CashExit
		}
		out = append(out, entity.CashMovement{
			CompanyID:      inv.CompanyID,
			Date:           inv.Date,
			Type:           mt,
			Amount:         inv.Total,
			CashRegisterID: inv.CashRegisterID,
			Source:         entity.CashSourceSales,
			DocumentRef:    inv.Number,
		})
	}
	for _, pu := range in.Purchases {
		if pu.Status != entity.PurchaseStatusPaid || pu.CashRegisterID == "" || pu.PaymentMethod == "" {
			continue
		}
		out = append(out, entity.CashMovement{
			CompanyID:      pu.CompanyID,
			Date:           pu.Date,
			Type:           entity.CashExit,
			Amount:         pu.Total,
			CashRegisterID: pu.CashRegisterID,
			Source:         entity.CashSourcePurchases,
			DocumentRef:    pu.Number,
		})
	}
	out = append(out, in.Manual...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Replay saldo = inicial + Σ ENTRY/TRANSFER_IN − Σ EXIT/TRANSFER_OUT, en el
// orden de Registers. Movimientos de caixas desconocidas se ignoran.
func Replay(registers []entity.CashRegister, movements []entity.CashMovement) []RegisterBalance {
	idx := make(map[string]int, len(registers))
	out := make([]RegisterBalance, len(registers))
	for i, r := range registers {
		idx[r.ID] = i
		out[i] = RegisterBalance{CashRegisterID: r.ID, Name: r.Name, InitialBalance: r.InitialBalance}
	}
	for _, m := range movements {
		i, ok := idx[m.CashRegisterID]
		if !ok {
			continue
		}
		if m.Type.IsInflow() {
			out[i].Inflows = out[i].Inflows.Add(m.Amount)
		} else {
			out[i].Outflows = out[i].Outflows.Add(m.Amount)
		}
	}
	for i := range out {
		out[i].Balance = out[i].InitialBalance.Add(out[i].Inflows).Sub(out[i].Outflows)
	}
	return out
}

// Build atajo DeriveMovements + Replay.
func Build(in LedgerInput) []RegisterBalance {
	return Replay(in.Registers, DeriveMovements(in))
}

// NewManualMovement valida un lançamento manual de entrada o salida.
func NewManualMovement(registerID string, mt entity.CashMovementType, amount decimal.Decimal, at time.Time, description, userID string) (entity.CashMovement, error) {
	if mt != entity.CashEntry && mt != entity.CashExit {
		return entity.CashMovement{}, fmt.Errorf("%w: use NewTransfer para transferencias", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(registerID) == "" || !amount.IsPositive() {
		return entity.CashMovement{}, fmt.Errorf("%w: caixa y monto positivo son obligatorios", domain.ErrInvalidInput)
	}
	return entity.CashMovement{
		ID:             uuid.New().String(),
		Date:           at,
		Type:           mt,
		Amount:         amount,
		CashRegisterID: registerID,
		Source:         entity.CashSourceManual,
		Description:    description,
		CreatedBy:      userID,
	}, nil
}

// NewTransfer crea las dos pernas de una transferencia: mismo monto, misma
// fecha y mismo TransferID.
func NewTransfer(fromID, toID string, amount decimal.Decimal, at time.Time, description, userID string) ([2]entity.CashMovement, error) {
	var legs [2]entity.CashMovement
	if fromID == "" || toID == "" || fromID == toID {
		return legs, fmt.Errorf("%w: caixas de origen y destino deben ser distintas", domain.ErrInvalidTransfer)
	}
	if !amount.IsPositive() {
		return legs, fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidTransfer)
	}
	transferID := uuid.New().String()
	base := entity.CashMovement{
		Date:        at,
		Amount:      amount,
		Source:      entity.CashSourceManual,
		TransferID:  transferID,
		Description: description,
		CreatedBy:   userID,
	}
	out, in := base, base
	out.ID, out.Type, out.CashRegisterID = uuid.New().String(), entity.CashTransferOut, fromID
	in.ID, in.Type, in.CashRegisterID = uuid.New().String(), entity.CashTransferIn, toID
	out.DocumentRef, in.DocumentRef = toID, fromID
	legs[0], legs[1] = out, in
	return legs, nil
}

// PairingIssue perna huérfana o descuadrada.
type PairingIssue struct {
	TransferID string
	Reason     string
}

// VerifyTransferPairing comprueba que cada TRANSFER_OUT tenga exactamente un
// TRANSFER_IN con el mismo monto y fecha, en otra caixa, y viceversa.
func VerifyTransferPairing(movements []entity.CashMovement) []PairingIssue {
	type pair struct {
		outs, ins []entity.CashMovement
	}
	groups := make(map[string]*pair)
	var order []string
	var issues []PairingIssue
	for _, m := range movements {
		if m.Type != entity.CashTransferIn && m.Type != entity.CashTransferOut {
			continue
		}
		if m.TransferID == "" {
			issues = append(issues, PairingIssue{Reason: "perna de transferencia sin identificador"})
			continue
		}
		g, ok := groups[m.TransferID]
		if !ok {
			g = &pair{}
			groups[m.TransferID] = g
			order = append(order, m.TransferID)
		}
		if m.Type == entity.CashTransferOut {
			g.outs = append(g.outs, m)
		} else {
			g.ins = append(g.ins, m)
		}
	}
	for _, id := range order {
		g := groups[id]
		if len(g.outs) != 1 || len(g.ins) != 1 {
			issues = append(issues, PairingIssue{TransferID: id, Reason: fmt.Sprintf("%d salidas y %d entradas", len(g.outs), len(g.ins))})
			continue
		}
		o, i := g.outs[0], g.ins[0]
		switch {
		case !o.Amount.Equal(i.Amount):
			issues = append(issues, PairingIssue{TransferID: id, Reason: "montos distintos"})
		case !o.Date.Equal(i.Date):
			issues = append(issues, PairingIssue{TransferID: id, Reason: "fechas distintas"})
		case o.CashRegisterID == i.CashRegisterID:
			issues = append(issues, PairingIssue{TransferID: id, Reason: "origen y destino iguales"})
		}
	}
	return issues
}
