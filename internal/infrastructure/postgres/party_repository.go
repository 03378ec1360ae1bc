package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

const (
	partiesTable             = "parties"
	accountTransactionsTable = "account_transactions"
)

type partyRow struct {
	ID             string          `db:"id"`
	CompanyID      string          `db:"company_id"`
	Kind           string          `db:"kind"`
	Name           string          `db:"name"`
	NIF            string          `db:"nif"`
	Address        string          `db:"address"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	AccountBalance decimal.Decimal `db:"account_balance"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type accountTransactionRow struct {
	ID          string          `db:"id"`
	PartyID     string          `db:"party_id"`
	Date        time.Time       `db:"date"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	DocumentRef string          `db:"document_ref"`
	Description string          `db:"description"`
}

// PartyRepo clientes/fornecedores y su conta corrente (usable con pool o tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository pool o tx.
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

// GetByID carga la entidad y sus lançamentos en orden cronológico. nil si no existe.
func (r *PartyRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Party, error) {
	var row partyRow
	found, err := getOne(ctx, r.q, &row, psql.Select(
		"id", "company_id", "kind", "name", "nif", "address", "email", "phone",
		"initial_balance", "account_balance", "created_at", "updated_at",
	).From(partiesTable).Where(sq.Eq{"id": id, "company_id": companyID}))
	if err != nil {
		return nil, fmt.Errorf("get party: %w", err)
	}
	if !found {
		return nil, nil
	}

	var txRows []accountTransactionRow
	if err := selectAll(ctx, r.q, &txRows, psql.Select(
		"id", "party_id", "date", "type", "amount", "document_ref", "description",
	).From(accountTransactionsTable).Where(sq.Eq{"party_id": id}).OrderBy("date", "id")); err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}

	p := &entity.Party{
		ID:             row.ID,
		CompanyID:      row.CompanyID,
		Kind:           entity.PartyKind(row.Kind),
		Name:           row.Name,
		NIF:            row.NIF,
		Address:        row.Address,
		Email:          row.Email,
		Phone:          row.Phone,
		InitialBalance: row.InitialBalance,
		AccountBalance: row.AccountBalance,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	for _, t := range txRows {
		p.Transactions = append(p.Transactions, entity.AccountTransaction{
			ID:          t.ID,
			PartyID:     t.PartyID,
			Date:        t.Date,
			Type:        entity.TransactionType(t.Type),
			Amount:      t.Amount,
			DocumentRef: t.DocumentRef,
			Description: t.Description,
		})
	}
	return p, nil
}

// AppendTransactions inserta los lançamentos en una sola sentencia.
func (r *PartyRepo) AppendTransactions(ctx context.Context, txs []entity.AccountTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	ins := psql.Insert(accountTransactionsTable).
		Columns("id", "party_id", "date", "type", "amount", "document_ref", "description")
	for i := range txs {
		if txs[i].ID == "" {
			txs[i].ID = uuid.New().String()
		}
		t := txs[i]
		ins = ins.Values(t.ID, t.PartyID, t.Date, string(t.Type), t.Amount, t.DocumentRef, t.Description)
	}
	if _, err := exec(ctx, r.q, ins); err != nil {
		return fmt.Errorf("insert account transactions: %w", err)
	}
	return nil
}

// UpdateBalance guarda el saldo derivado.
func (r *PartyRepo) UpdateBalance(ctx context.Context, partyID string, balance decimal.Decimal) error {
	cmd, err := exec(ctx, r.q, psql.Update(partiesTable).
		Set("account_balance", balance).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": partyID}))
	if err != nil {
		return fmt.Errorf("update party balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
