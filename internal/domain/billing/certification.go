package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/pkg/agt"
)

// Signer firma el mensaje de encadenamiento de un documento (RSA-SHA1 base64
// en producción).
type Signer interface {
	Sign(message string) (string, error)
}

// ManualNumbering número y hash informados por el operador (series MANUAL).
type ManualNumbering struct {
	Number string
	Hash   string
}

// ValidationError motivos por los que el documento no puede certificarse.
// Se compara con errors.Is(err, domain.ErrInvalidInput).
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "no se puede certificar: " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// EnsureEditable rechaza cambios sobre documentos certificados.
func EnsureEditable(inv *entity.Invoice) error {
	if inv.IsCertified {
		return domain.ErrDocumentImmutable
	}
	return nil
}

// ValidateForCertification devuelve un *ValidationError con todos los motivos
// encontrados, o nil.
func ValidateForCertification(inv *entity.Invoice, series *entity.DocumentSeries, userID string, manual ManualNumbering) error {
	var reasons []string
	if !inv.Type.Valid() {
		reasons = append(reasons, fmt.Sprintf("tipo de documento %q desconocido", inv.Type))
	}
	if strings.TrimSpace(inv.ClientID) == "" {
		reasons = append(reasons, "el documento no tiene cliente")
	}
	if !agt.IsConsumerFinal(inv.ClientNIF) {
		if err := agt.ValidateNIF(inv.ClientNIF); err != nil {
			reasons = append(reasons, fmt.Sprintf("NIF del cliente %q inválido", inv.ClientNIF))
		}
	}
	if series == nil {
		reasons = append(reasons, "el documento no tiene serie")
	}
	if len(inv.Items) == 0 {
		reasons = append(reasons, "el documento no tiene líneas")
	}
	for i, it := range inv.Items {
		if !agt.IsStandardTaxRate(it.TaxRate) {
			reasons = append(reasons, fmt.Sprintf("línea %d: taxa de IVA %s no permitida", i+1, it.TaxRate.String()))
		}
	}
	if series != nil {
		if !series.IsActive {
			reasons = append(reasons, domain.ErrSeriesInactive.Error())
		}
		if series.Year != 0 && series.Year != inv.Date.Year() {
			reasons = append(reasons, domain.ErrSeriesYearMismatch.Error())
		}
		if !series.AllowsUser(userID) {
			reasons = append(reasons, "el usuario no está autorizado a usar la serie")
		}
		if series.Type == entity.SeriesManual {
			if strings.TrimSpace(manual.Number) == "" {
				reasons = append(reasons, "serie manual: falta el número del documento")
			}
			if strings.TrimSpace(manual.Hash) == "" {
				reasons = append(reasons, "serie manual: falta el hash del documento")
			}
		}
	}
	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// FormatNumber número fiscal: "<tipo> <série>/<sequência>".
func FormatNumber(t entity.InvoiceType, seriesCode string, seq int) string {
	return fmt.Sprintf("%s %s/%d", t, seriesCode, seq)
}

// HashMessage cadena firmada en la certificación:
// InvoiceDate;SystemEntryDate;InvoiceNo;GrossTotal;HashAnterior.
func HashMessage(invoiceDate, systemEntry time.Time, number string, grossTotal string, previousHash string) string {
	return strings.Join([]string{
		invoiceDate.Format("2006-01-02"),
		systemEntry.Format("2006-01-02T15:04:05"),
		number,
		grossTotal,
		previousHash,
	}, ";")
}

// Certify transición única borrador → certificado. Congela los totales
// (incluida la retenção), asigna número y hash, y avanza la série.
// Si algo falla ni el documento ni la série se modifican.
func Certify(inv *entity.Invoice, series *entity.DocumentSeries, userID string, manual ManualNumbering, signer Signer, now time.Time) error {
	if inv.IsCertified {
		return domain.ErrAlreadyCertified
	}
	if inv.IsCancelled() {
		return domain.ErrAlreadyCancelled
	}
	if err := ValidateForCertification(inv, series, userID, manual); err != nil {
		return err
	}

	totals := Recompute(inv)

	var number, hash string
	seq := series.CurrentSequence
	switch series.Type {
	case entity.SeriesManual:
		number = strings.TrimSpace(manual.Number)
		hash = strings.TrimSpace(manual.Hash)
	default:
		seq++
		number = FormatNumber(inv.Type, series.Code, seq)
		msg := HashMessage(inv.Date, now, number, totals.Total.StringFixed(2), series.LastHash)
		sig, err := signer.Sign(msg)
		if err != nil {
			return fmt.Errorf("firmar documento %s: %w", number, err)
		}
		hash = sig
	}

	Apply(inv, totals)
	inv.Number = number
	inv.Hash = hash
	inv.IsCertified = true
	entry := now
	inv.SystemEntryDate = &entry
	inv.SeriesID = series.ID
	if inv.Type.IsCashType() {
		inv.Status = entity.InvoiceStatusPaid
	} else {
		inv.Status = entity.InvoiceStatusPending
	}
	inv.UpdatedAt = now

	if series.Type != entity.SeriesManual {
		series.CurrentSequence = seq
		series.LastHash = hash
		series.UpdatedAt = now
	}
	return nil
}

// Cancel anula el documento conservando el registro.
func Cancel(inv *entity.Invoice, reason string, now time.Time) error {
	if inv.IsCancelled() {
		return domain.ErrAlreadyCancelled
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &ValidationError{Reasons: []string{"el motivo de anulación es obligatorio"}}
	}
	inv.Status = entity.InvoiceStatusCancelled
	inv.CancelReason = reason
	at := now
	inv.CancelledAt = &at
	inv.UpdatedAt = now
	return nil
}
