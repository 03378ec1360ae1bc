// Package accounts: conta corrente de clientes y proveedores.
package accounts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// Balance saldo inicial + Σ débitos − Σ créditos.
func Balance(initial decimal.Decimal, txs []entity.AccountTransaction) decimal.Decimal {
	bal := initial
	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionDebit:
			bal = bal.Add(tx.Amount)
		case entity.TransactionCredit:
			bal = bal.Sub(tx.Amount)
		}
	}
	return bal
}

// Refresh recalcula el saldo derivado de la entidad.
func Refresh(p *entity.Party) {
	p.AccountBalance = Balance(p.InitialBalance, p.Transactions)
}

// PostingFor lançamentos que un documento de venta certificado genera en la
// conta corrente del cliente. Los documentos pagados en el acto registran el
// débito y su liquidación.
func PostingFor(inv *entity.Invoice, at time.Time) []entity.AccountTransaction {
	mk := func(tt entity.TransactionType, desc string) entity.AccountTransaction {
		return entity.AccountTransaction{
			PartyID:     inv.ClientID,
			Date:        at,
			Type:        tt,
			Amount:      inv.Total,
			DocumentRef: inv.Number,
			Description: desc,
		}
	}
	switch inv.Type {
	case entity.InvoiceTypeFT, entity.InvoiceTypeND:
		return []entity.AccountTransaction{mk(entity.TransactionDebit, inv.Type.Description())}
	case entity.InvoiceTypeFR, entity.InvoiceTypeVD:
		return []entity.AccountTransaction{
			mk(entity.TransactionDebit, inv.Type.Description()),
			mk(entity.TransactionCredit, "Liquidação "+inv.Number),
		}
	case entity.InvoiceTypeNC, entity.InvoiceTypeRG:
		return []entity.AccountTransaction{mk(entity.TransactionCredit, inv.Type.Description())}
	case entity.InvoiceTypePP, entity.InvoiceTypeOR:
		return nil
	default:
		return nil
	}
}

// ReversalFor contrapartida de la anulación de un documento ya lançado.
func ReversalFor(inv *entity.Invoice, at time.Time) []entity.AccountTransaction {
	posted := PostingFor(inv, at)
	out := make([]entity.AccountTransaction, 0, len(posted))
	for _, tx := range posted {
		if tx.Type == entity.TransactionDebit {
			tx.Type = entity.TransactionCredit
		} else {
			tx.Type = entity.TransactionDebit
		}
		tx.Description = "Anulação " + inv.Number
		out = append(out, tx)
	}
	return out
}

// PostingForPurchase lançamentos en la conta del proveedor: la compra es un
// crédito a su favor y, si está pagada, se liquida con un débito.
func PostingForPurchase(p *entity.Purchase, at time.Time) []entity.AccountTransaction {
	if p.Status == entity.PurchaseStatusCancelled {
		return nil
	}
	out := []entity.AccountTransaction{{
		PartyID: p.SupplierID, Date: at, Type: entity.TransactionCredit,
		Amount: p.Total, DocumentRef: p.Number, Description: "Compra " + p.Number,
	}}
	if p.Status == entity.PurchaseStatusPaid {
		out = append(out, entity.AccountTransaction{
			PartyID: p.SupplierID, Date: at, Type: entity.TransactionDebit,
			Amount: p.Total, DocumentRef: p.Number, Description: "Pagamento " + p.Number,
		})
	}
	return out
}
