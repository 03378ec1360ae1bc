package entity

import "time"

// Warehouse armazém o loja. Un armazém encerrado conserva su histórico
// pero no admite ajustes nuevos.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Closed    bool
	CreatedAt time.Time
}
