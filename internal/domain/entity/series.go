package entity

import "time"

// SeriesType modo de numeración de la serie.
type SeriesType string

const (
	SeriesNormal SeriesType = "NORMAL" // numeración automática
	SeriesManual SeriesType = "MANUAL" // recuperación de documentos en papel
)

// DocumentSeries secuencia de numeración anual.
type DocumentSeries struct {
	ID              string
	CompanyID       string
	Code            string
	Type            SeriesType
	Year            int
	CurrentSequence int
	LastHash        string // hash del último documento certificado (encadenamiento)
	AllowedUserIDs  []string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AllowsUser lista vacía = todos los usuarios.
func (s *DocumentSeries) AllowsUser(userID string) bool {
	if len(s.AllowedUserIDs) == 0 {
		return true
	}
	for _, id := range s.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
