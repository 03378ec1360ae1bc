// Firma de documentos comerciales para la cadena de hashes exigida por la AGT.
// El mensaje es "data;dataSistema;numero;total;hashAnterior" y la firma
// RSA-SHA1 en Base64 se guarda en el documento y en la serie.

package agt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"fmt"

	"github.com/jhoicas/Faturacao-api/internal/domain/billing"
)

// RSASigner firma con la llave privada del software certificado.
type RSASigner struct {
	key *rsa.PrivateKey
}

// NewRSASigner crea el firmador a partir de una llave ya cargada.
func NewRSASigner(key *rsa.PrivateKey) (*RSASigner, error) {
	if key == nil {
		return nil, fmt.Errorf("agt: llave privada nula")
	}
	return &RSASigner{key: key}, nil
}

// Sign implementa billing.Signer.
func (s *RSASigner) Sign(message string) (string, error) {
	sum := sha1.Sum([]byte(message))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA1, sum[:])
	if err != nil {
		return "", fmt.Errorf("agt: firmar documento: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify comprueba una firma producida por Sign.
func (s *RSASigner) Verify(message, signature string) error {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("agt: firma no es Base64: %w", err)
	}
	sum := sha1.Sum([]byte(message))
	return rsa.VerifyPKCS1v15(&s.key.PublicKey, crypto.SHA1, sum[:], raw)
}

// DigestSigner encadena con SHA-1 sin llave. Solo para desarrollo:
// los documentos que produce no son válidos ante la AGT.
type DigestSigner struct{}

// Sign implementa billing.Signer.
func (DigestSigner) Sign(message string) (string, error) {
	sum := sha1.Sum([]byte(message))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// NewSigner elige RSASigner si hay certificado configurado y DigestSigner en caso contrario.
func NewSigner(certPath, keyPath, password string) (billing.Signer, bool, error) {
	key, _, err := LoadKey(certPath, keyPath, password)
	if err != nil {
		return nil, false, err
	}
	if key == nil {
		return DigestSigner{}, false, nil
	}
	s, err := NewRSASigner(key)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

var (
	_ billing.Signer = (*RSASigner)(nil)
	_ billing.Signer = DigestSigner{}
)
