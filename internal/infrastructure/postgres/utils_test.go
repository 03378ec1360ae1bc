package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

func TestDateWindow_FechaEfectiva(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	b := psql.Select("id").From(invoicesTable)
	b = dateWindow(b, "COALESCE(accounting_date, date)", repository.DocumentFilter{From: from, To: to})

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM invoices WHERE COALESCE(accounting_date, date) >= $1 AND COALESCE(accounting_date, date) <= $2", query)
	assert.Equal(t, []any{from, to}, args)
}

func TestDateWindow_SinLimites(t *testing.T) {
	query, args, err := dateWindow(psql.Select("id").From("purchases"), "date", repository.DocumentFilter{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM purchases", query)
	assert.Empty(t, args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", deref(nullIfEmpty("x")))
	assert.Equal(t, "", deref(nil))
}
