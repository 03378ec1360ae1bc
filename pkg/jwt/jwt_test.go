package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Faturacao-api/pkg/jwt"
)

var contabilista = jwt.Identity{UserID: "u1", CompanyID: "c1", Role: "contabilista"}

func TestGenerateYParse(t *testing.T) {
	token, err := jwt.Generate("segredo", "faturacao-api", contabilista, 5*time.Minute)
	require.NoError(t, err)

	id, err := jwt.Parse("segredo", "faturacao-api", token)

	require.NoError(t, err)
	assert.Equal(t, contabilista, id)
}

func TestParse_Rechazos(t *testing.T) {
	token, err := jwt.Generate("segredo", "faturacao-api", contabilista, 5*time.Minute)
	require.NoError(t, err)
	expired, err := jwt.Generate("segredo", "faturacao-api", contabilista, -time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name, secret, issuer, token string
	}{
		{"firma incorrecta", "outro", "", token},
		{"expirado", "segredo", "", expired},
		{"emisor distinto", "segredo", "otro-emisor", token},
		{"malformado", "segredo", "", "a.b.c"},
		{"sin secreto", "", "", token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jwt.Parse(tc.secret, tc.issuer, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestParse_SoloHS256(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		CompanyID:        "c1",
		Role:             "admin",
	}
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	_, err = jwt.Parse("segredo", "", hs512)
	assert.Error(t, err)
}

func TestParse_SubjectComoUsuario(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "u9",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		CompanyID: "c1",
		Role:      "operador",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	id, err := jwt.Parse("segredo", "", tok)
	require.NoError(t, err)
	assert.Equal(t, "u9", id.UserID)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := jwt.Generate("", "x", contabilista, time.Minute)
	assert.ErrorIs(t, err, jwt.ErrNoSecret)
}
