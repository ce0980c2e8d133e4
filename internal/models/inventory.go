package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord is the denormalized current-stock counter for a book.
// Stock never goes below zero; every write path enforces that before
// committing, the column is not trusted to do it alone.
type InventoryRecord struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BookID      uuid.UUID `json:"libro_id" db:"libro_id"`
	Stock       int       `json:"stock" db:"stock"`
	LastUpdated time.Time `json:"updated_at" db:"updated_at"`
}
