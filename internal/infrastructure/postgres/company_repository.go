package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

type companyRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	NIF       string    `db:"nif"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	Regime    string    `db:"regime"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByID obtiene una empresa por ID. nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var row companyRow
	found, err := getOne(ctx, r.q, &row, psql.Select(
		"id", "name", "nif", "address", "city", "phone", "email", "regime", "created_at", "updated_at",
	).From("companies").Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &entity.Company{
		ID:        row.ID,
		Name:      row.Name,
		NIF:       row.NIF,
		Address:   row.Address,
		City:      row.City,
		Phone:     row.Phone,
		Email:     row.Email,
		Regime:    entity.TaxRegime(row.Regime),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
