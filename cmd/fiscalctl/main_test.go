package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/pkg/jwt"
)

const sample = "testdata/empresa.json"

// run ejecuta el CLI y devuelve stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestModelo7_RegimenGeneral(t *testing.T) {
	out, err := run(t, "modelo7", "-f", sample, "--year", "2024", "--month", "3")
	require.NoError(t, err)

	r := decode[dto.Modelo7Response](t, out)
	assert.Equal(t, "2024-03", r.Period)
	assert.Equal(t, "GERAL", r.Regime)
	require.NotNil(t, r.General)
	// el borrador de 500000 no cuenta
	assert.True(t, r.General.TotalSalesBase.Equal(d("250000")), r.General.TotalSalesBase.String())
	assert.True(t, r.General.TotalFavorEstado.Equal(d("35000")), r.General.TotalFavorEstado.String())
}

func TestStamp_SoloRecibos(t *testing.T) {
	out, err := run(t, "stamp", "-f", sample, "--year", "2024", "--month", "3")
	require.NoError(t, err)

	r := decode[dto.StampDutyResponse](t, out)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "FR A2024/1", r.Rows[0].DocumentNumber)
	assert.True(t, r.TotalTax.Equal(d("570")), r.TotalTax.String())
}

func TestModelo1_ColumnaComparativa(t *testing.T) {
	out, err := run(t, "modelo1", "-f", sample, "--year", "2024")
	require.NoError(t, err)

	r := decode[dto.Modelo1Response](t, out)
	assert.Equal(t, 2024, r.Current.Year)
	assert.Equal(t, 2023, r.Prior.Year)
	assert.NotEmpty(t, r.Current.Lines)
}

func TestStock_ReproduceDocumentos(t *testing.T) {
	out, err := run(t, "stock", "-f", sample)
	require.NoError(t, err)

	r := decode[dto.StockReportResponse](t, out)
	require.Len(t, r.Balances, 1)
	b := r.Balances[0]
	assert.Equal(t, "p1", b.ProductID)
	// compra 10, FT 2, FR 1; el borrador no mueve stock
	assert.True(t, b.Balance.Equal(d("7")), b.Balance.String())
	assert.Empty(t, r.Alerts)
	assert.Empty(t, r.Drifts)
}

func TestCash_SaldoDeCaixa(t *testing.T) {
	out, err := run(t, "cash", "-f", sample)
	require.NoError(t, err)

	r := decode[dto.CashRegistersResponse](t, out)
	require.Len(t, r.Registers, 1)
	// 1000000 + FR 57000 - compra 456000
	assert.True(t, r.Registers[0].Balance.Equal(d("601000")), r.Registers[0].Balance.String())
}

func TestSAFT_EscribeFicheiro(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "saft", "-f", sample, "--year", "2024", "--month", "3", "--out-dir", dir)
	require.NoError(t, err)

	r := decode[map[string]any](t, out)
	path, _ := r["file"].(string)
	require.NotEmpty(t, path)
	assert.NotEmpty(t, r["digest"])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "<?xml"))
	assert.Contains(t, string(raw), "5417000000")
}

func TestErrores(t *testing.T) {
	_, err := run(t, "modelo7", "--year", "2024")
	assert.ErrorContains(t, err, "--fixture")

	_, err = run(t, "modelo7", "-f", "testdata/no-existe.json", "--year", "2024")
	assert.Error(t, err)

	_, err = run(t, "modelo7", "-f", sample, "--year", "1999")
	assert.Error(t, err)

	_, err = run(t, "modelo7", "-f", sample)
	assert.Error(t, err, "--year es obligatorio")
}

func TestToken_EmiteTokenValido(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-cli")
	out, err := run(t, "token", "--company", "c1", "--role", "contabilista")
	require.NoError(t, err)

	r := decode[map[string]string](t, out)
	id, err := jwt.Parse("secreto-cli", "faturacao-api", r["token"])
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: "dev", CompanyID: "c1", Role: "contabilista"}, id)

	_, err = run(t, "token", "--company", "c1", "--role", "root")
	assert.Error(t, err)
}
