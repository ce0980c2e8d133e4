package models

import (
	"time"

	"github.com/google/uuid"
)

// Movement kinds. entrada and ajuste add stock, salida and venta remove it.
const (
	MovementEntrada = "entrada"
	MovementSalida  = "salida"
	MovementVenta   = "venta"
	MovementAjuste  = "ajuste"
)

// ValidMovementKind reports whether kind is one of the four known literals.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementEntrada, MovementSalida, MovementVenta, MovementAjuste:
		return true
	}
	return false
}

// MovementIsInflow reports whether kind increases stock.
func MovementIsInflow(kind string) bool {
	return kind == MovementEntrada || kind == MovementAjuste
}

// Movement is an append-only ledger entry. Rows are never updated or
// deleted once written; the public API exposes no mutation for them.
type Movement struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	InventoryID uuid.UUID  `json:"inventario_id" db:"inventario_id"`
	Tipo        string     `json:"tipo" db:"tipo"`
	Cantidad    int        `json:"cantidad" db:"cantidad"`
	UserID      *uuid.UUID `json:"usuario_id" db:"usuario_id"`
	Notes       *string    `json:"observaciones" db:"observaciones"`
	OccurredAt  time.Time  `json:"fecha_movimiento" db:"fecha_movimiento"`
}
