package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx: los repos funcionan igual dentro
// y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner lo cumplen el pool (transacción) y pgx.Tx (savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// psql builder con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// selectAll construye la consulta y escanea todas las filas en dest.
func selectAll(ctx context.Context, q Querier, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, q, dest, query, args...)
}

// getOne escanea una fila. found=false si no hay resultado.
func getOne(ctx context.Context, q Querier, dest any, b sq.Sqlizer) (found bool, err error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, q, dest, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func exec(ctx context.Context, q Querier, b sq.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build query: %w", err)
	}
	return q.Exec(ctx, query, args...)
}

// dateWindow aplica el filtro de fechas sobre la expresión col.
func dateWindow(b sq.SelectBuilder, col string, f repository.DocumentFilter) sq.SelectBuilder {
	if !f.From.IsZero() {
		b = b.Where(sq.Expr(col+" >= ?", f.From))
	}
	if !f.To.IsZero() {
		b = b.Where(sq.Expr(col+" <= ?", f.To))
	}
	return b
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
