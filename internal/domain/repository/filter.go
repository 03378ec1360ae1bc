package repository

import "time"

// DocumentFilter ventana opcional de fechas (cero = sin límite). Para
// documentos de venta se aplica sobre la fecha contable o, en su defecto,
// la de emisión.
type DocumentFilter struct {
	From time.Time
	To   time.Time
}
