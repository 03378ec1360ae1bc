package agt

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateNIF valida el formato del Número de Identificação Fiscal angoleño.
// Personas colectivas: 10 dígitos. Personas singulares: número del Bilhete de
// Identidade (9 dígitos + 2 letras + 3 dígitos). Se acepta el NIF genérico de
// consumidor final.
func ValidateNIF(nif string) error {
	n := strings.ToUpper(strings.TrimSpace(nif))
	if n == "" {
		return fmt.Errorf("agt: NIF vacío")
	}
	if n == ConsumerFinalNIF {
		return nil
	}
	if len(n) == 10 && allDigits(n) {
		return nil
	}
	if len(n) == 14 && allDigits(n[:9]) && allLetters(n[9:11]) && allDigits(n[11:]) {
		return nil
	}
	return fmt.Errorf("agt: NIF %q con formato inválido", nif)
}

// IsConsumerFinal indica si el NIF es el genérico (o está vacío).
func IsConsumerFinal(nif string) bool {
	n := strings.TrimSpace(nif)
	return n == "" || n == ConsumerFinalNIF
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func allLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}
