package agt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSASigner_FirmaVerificable(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	s, err := NewRSASigner(key)
	require.NoError(t, err)

	msg := "2024-05-10;2024-05-10T09:30:00;FT A2024/13;285000.00;hash-anterior"
	sig, err := s.Sign(msg)

	require.NoError(t, err)
	assert.NotEmpty(t, sig)
	assert.NoError(t, s.Verify(msg, sig))
	assert.Error(t, s.Verify(msg+"x", sig))
}

func TestNewRSASigner_LlaveNula(t *testing.T) {
	_, err := NewRSASigner(nil)
	assert.Error(t, err)
}

func TestNewSigner_SinCertificadoUsaDigest(t *testing.T) {
	s, real, err := NewSigner("", "", "")

	require.NoError(t, err)
	assert.False(t, real)
	a, _ := s.Sign("abc")
	b, _ := s.Sign("abc")
	c, _ := s.Sign("abd")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestNewSigner_CertificadoInexistente(t *testing.T) {
	_, _, err := NewSigner("/no/existe.p12", "", "x")
	assert.Error(t, err)
}
