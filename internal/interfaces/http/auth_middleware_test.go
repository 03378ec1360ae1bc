package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	apphttp "github.com/jhoicas/Faturacao-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Faturacao-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "faturacao-test"
)

// signToken firma un token del emisor de pruebas.
func signToken(t *testing.T, issuer string, id pkgjwt.Identity, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, issuer, id, ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

// tokenForRole token válido de la empresa de pruebas con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	return signToken(t, testIssuer, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: role}, time.Hour)
}

// guardedApp GET /protected detrás de AuthMiddleware + RequireRole; devuelve la identidad.
func guardedApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	return app
}

func get(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	ok := pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: apphttp.RoleAdmin}

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"sin cabecera", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expirado", signToken(t, testIssuer, ok, -time.Hour), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"otro emisor", signToken(t, "otro-idp", ok, time.Hour), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"sin empresa", signToken(t, testIssuer, pkgjwt.Identity{UserID: testUserID, Role: apphttp.RoleAdmin}, time.Hour), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"sin rol", signToken(t, testIssuer, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID}, time.Hour), http.StatusUnauthorized, "MISSING_ROLE"},
	}
	app := guardedApp(apphttp.RoleAdmin)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(t, app, tc.header)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRequireRole_Matriz(t *testing.T) {
	cases := []struct {
		allowed []string
		role    string
		status  int
	}{
		{[]string{apphttp.RoleAdmin}, apphttp.RoleAdmin, http.StatusOK},
		{[]string{apphttp.RoleAdmin}, apphttp.RoleOperator, http.StatusForbidden},
		{[]string{apphttp.RoleAdmin, apphttp.RoleAccountant}, apphttp.RoleAccountant, http.StatusOK},
		{[]string{apphttp.RoleAdmin, apphttp.RoleOperator}, apphttp.RoleAccountant, http.StatusForbidden},
		{[]string{apphttp.RoleOperator}, "OPERADOR", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			resp := get(t, guardedApp(tc.allowed...), tokenForRole(t, tc.role))
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_DejaIdentidadEnLocals(t *testing.T) {
	resp := get(t, guardedApp(apphttp.RoleAccountant), tokenForRole(t, apphttp.RoleAccountant))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, apphttp.RoleAccountant, body["role"])
}

func TestAuthMiddleware_SinEmisorConfiguradoAceptaCualquiera(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret, ""), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetCompanyID(c))
	})
	tok := signToken(t, "otro-idp", pkgjwt.Identity{UserID: "u", CompanyID: "c9", Role: apphttp.RoleAdmin}, time.Hour)

	resp := get(t, app, tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
