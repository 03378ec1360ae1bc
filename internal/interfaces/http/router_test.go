package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	fiscal "github.com/jhoicas/Faturacao-api/internal/domain/billing"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/saft"
	apphttp "github.com/jhoicas/Faturacao-api/internal/interfaces/http"
)

type fakeInvoices struct {
	previewIn  dto.PreviewInvoiceRequest
	certifyErr error
	cancelErr  error
	certified  []string
}

func (f *fakeInvoices) Preview(in dto.PreviewInvoiceRequest) (*dto.InvoiceTotalsResponse, error) {
	f.previewIn = in
	return &dto.InvoiceTotalsResponse{Subtotal: decimal.NewFromInt(25000), Total: decimal.NewFromInt(28500), Currency: "AOA"}, nil
}

func (f *fakeInvoices) Certify(_ context.Context, companyID, userID, invoiceID string, _ dto.CertifyInvoiceRequest) (*dto.InvoiceResponse, error) {
	if f.certifyErr != nil {
		return nil, f.certifyErr
	}
	f.certified = append(f.certified, companyID+"/"+userID+"/"+invoiceID)
	return &dto.InvoiceResponse{ID: invoiceID, Number: "FT A2024/13", IsCertified: true}, nil
}

func (f *fakeInvoices) Cancel(_ context.Context, _, invoiceID string, in dto.CancelInvoiceRequest) (*dto.InvoiceResponse, error) {
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &dto.InvoiceResponse{ID: invoiceID, Status: "CANCELLED", CancelReason: in.Reason}, nil
}

type fakeReports struct {
	lastQuery dto.PeriodQuery
	err       error
}

func (f *fakeReports) Modelo7(_ context.Context, _ string, q dto.PeriodQuery) (*dto.Modelo7Response, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return &dto.Modelo7Response{Period: fmt.Sprintf("%d-%02d", q.Year, q.Month)}, nil
}

func (f *fakeReports) Modelo1(context.Context, string, int) (*dto.Modelo1Response, error) {
	return &dto.Modelo1Response{}, nil
}

func (f *fakeReports) ReplaceOverrides(context.Context, string, dto.Modelo1OverridesRequest) (*dto.Modelo1Response, error) {
	return &dto.Modelo1Response{}, nil
}

func (f *fakeReports) StampDuty(context.Context, string, dto.PeriodQuery) (*dto.StampDutyResponse, error) {
	return &dto.StampDutyResponse{}, nil
}

func (f *fakeReports) Dashboard(_ context.Context, _ string, q dto.PeriodQuery) (*dto.DashboardSummaryDTO, error) {
	f.lastQuery = q
	return &dto.DashboardSummaryDTO{}, nil
}

func (f *fakeReports) SAFT(context.Context, string, dto.PeriodQuery) (*saft.Result, error) {
	return &saft.Result{XML: []byte("<AuditFile/>"), Digest: "abc=", FileName: "SAFT_AO_5000000000_2024-05.xml"}, nil
}

type fakeInventory struct{}

func (fakeInventory) Stock(context.Context, string) (*dto.StockReportResponse, error) {
	return &dto.StockReportResponse{}, nil
}

func (fakeInventory) RegisterAdjustment(context.Context, string, string, dto.StockAdjustmentRequest) (*dto.StockBalanceDTO, error) {
	return &dto.StockBalanceDTO{}, nil
}

func (fakeInventory) ReconcileCache(context.Context, string) ([]dto.StockDriftDTO, error) {
	return nil, nil
}

type fakeTreasury struct {
	transferErr error
}

func (f *fakeTreasury) Registers(context.Context, string) (*dto.CashRegistersResponse, error) {
	return &dto.CashRegistersResponse{}, nil
}

func (f *fakeTreasury) RegisterMovement(context.Context, string, string, dto.CashMovementRequest) (*dto.CashMovementResponse, error) {
	return &dto.CashMovementResponse{}, nil
}

func (f *fakeTreasury) Transfer(context.Context, string, string, dto.CashTransferRequest) ([]dto.CashMovementResponse, error) {
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	return []dto.CashMovementResponse{{Type: "TRANSFER_OUT"}, {Type: "TRANSFER_IN"}}, nil
}

type testServer struct {
	app      *fiber.App
	invoices *fakeInvoices
	reports  *fakeReports
	treasury *fakeTreasury
}

func newTestServer() *testServer {
	s := &testServer{
		app:      fiber.New(),
		invoices: &fakeInvoices{},
		reports:  &fakeReports{},
		treasury: &fakeTreasury{},
	}
	apphttp.Router(s.app, apphttp.RouterDeps{
		Preview:   s.invoices,
		Certify:   s.invoices,
		Cancel:    s.invoices,
		Reports:   s.reports,
		Inventory: fakeInventory{},
		Treasury:  s.treasury,
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
		Log:       zerolog.Nop(),
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func validPreview() map[string]any {
	return map[string]any{
		"type": "FT",
		"items": []map[string]any{
			{"description": "Cimento", "type": "PRODUCT", "quantity": "10", "unit_price": "2500", "tax_rate": "14"},
		},
	}
}

func TestPreview_OK(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/invoices/preview", apphttp.RoleOperator, validPreview())
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.InvoiceTotalsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(28500)))
	require.Len(t, s.invoices.previewIn.Items, 1)
	assert.True(t, s.invoices.previewIn.Items[0].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestPreview_ValidacionDecimal(t *testing.T) {
	s := newTestServer()
	body := validPreview()
	body["items"].([]map[string]any)[0]["quantity"] = "0"

	resp := s.do(t, http.MethodPost, "/api/invoices/preview", apphttp.RoleOperator, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	require.NotEmpty(t, e.Reasons)
	assert.Contains(t, e.Reasons[0], "Quantity")
}

func TestPreview_SinLineas(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/invoices/preview", apphttp.RoleOperator, map[string]any{"type": "FT"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestCertify_OK(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/invoices/inv-1/certify", apphttp.RoleOperator, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{testCompanyID + "/" + testUserID + "/inv-1"}, s.invoices.certified)
}

func TestCertify_MotivosDeRechazo(t *testing.T) {
	s := newTestServer()
	s.invoices.certifyErr = &fiscal.ValidationError{Reasons: []string{"el documento no tiene cliente", "el documento no tiene serie"}}

	resp := s.do(t, http.MethodPost, "/api/invoices/inv-1/certify", apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Len(t, e.Reasons, 2)
}

func TestCertify_YaCertificado409(t *testing.T) {
	s := newTestServer()
	s.invoices.certifyErr = fmt.Errorf("certificar: %w", domain.ErrAlreadyCertified)

	resp := s.do(t, http.MethodPost, "/api/invoices/inv-1/certify", apphttp.RoleOperator, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, resp).Code)
}

func TestCertify_ContabilistaNoCertifica(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/invoices/inv-1/certify", apphttp.RoleAccountant, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, s.invoices.certified)
}

func TestCancel_NoEncontrado404(t *testing.T) {
	s := newTestServer()
	s.invoices.cancelErr = domain.ErrNotFound

	resp := s.do(t, http.MethodPost, "/api/invoices/x/cancel", apphttp.RoleOperator, map[string]string{"reason": "erro de digitação"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestCancel_MotivoObligatorio(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/invoices/x/cancel", apphttp.RoleOperator, map[string]string{"reason": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestModelo7_Query(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodGet, "/api/reports/modelo7?year=2024&month=5", apphttp.RoleAccountant, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.PeriodQuery{Year: 2024, Month: 5}, s.reports.lastQuery)
}

func TestModelo7_SinAnio400(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodGet, "/api/reports/modelo7?month=5", apphttp.RoleAccountant, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestModelo7_ErrorInterno500SinDetalle(t *testing.T) {
	s := newTestServer()
	s.reports.err = errors.New("listar documentos: conexión rechazada")

	resp := s.do(t, http.MethodGet, "/api/reports/modelo7?year=2024", apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "INTERNAL", e.Code)
	assert.NotContains(t, e.Message, "conexión")
}

func TestModelo1_AnioInvalido(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodGet, "/api/reports/modelo1?year=abc", apphttp.RoleAccountant, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSAFT_Descarga(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodGet, "/api/reports/saft?year=2024&month=5", apphttp.RoleAccountant, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "SAFT_AO_5000000000_2024-05.xml")
	assert.Equal(t, "abc=", resp.Header.Get("X-SAFT-Digest"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "<AuditFile/>", string(body))
}

func TestSAFT_OperadorNoExporta(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodGet, "/api/reports/saft?year=2024", apphttp.RoleOperator, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestDashboard_SinPeriodo(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodGet, "/api/dashboard/summary", apphttp.RoleOperator, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.PeriodQuery{}, s.reports.lastQuery)
}

func TestTransfer_Created(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/cash/transfers", apphttp.RoleOperator, map[string]any{
		"from_register_id": "cx-1", "to_register_id": "cx-2", "amount": "1500",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var legs []dto.CashMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&legs))
	assert.Len(t, legs, 2)
}

func TestTransfer_MismaCaixa400(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/cash/transfers", apphttp.RoleOperator, map[string]any{
		"from_register_id": "cx-1", "to_register_id": "cx-1", "amount": "1500",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTransfer_ErrorDeDominio400(t *testing.T) {
	s := newTestServer()
	s.treasury.transferErr = fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidTransfer)
	resp := s.do(t, http.MethodPost, "/api/cash/transfers", apphttp.RoleAdmin, map[string]any{
		"from_register_id": "cx-1", "to_register_id": "cx-2", "amount": "10",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestInventory_ReconcileSoloAdmin(t *testing.T) {
	s := newTestServer()
	resp := s.do(t, http.MethodPost, "/api/inventory/reconcile", apphttp.RoleOperator, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/inventory/reconcile", apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
