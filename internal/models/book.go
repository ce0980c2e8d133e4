package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre"`
	Autor     string    `json:"autor" db:"autor"`
	Precio    float64   `json:"precio" db:"precio"`
	StockMin  int       `json:"stock_minimo" db:"stock_minimo"`
	CreatedAt time.Time `json:"fecha_creacion" db:"fecha_creacion"`
}

// LowStockEntry is one row of the low-stock report: a book whose current
// stock sits below its configured minimum.
type LowStockEntry struct {
	BookID   uuid.UUID `json:"libro_id"`
	Nombre   string    `json:"libro"`
	Stock    int       `json:"stock"`
	StockMin int       `json:"stock_minimo"`
}
