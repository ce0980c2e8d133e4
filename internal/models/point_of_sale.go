package models

import "github.com/google/uuid"

const (
	PointOfSaleTienda = "tienda"
	PointOfSaleMetro  = "metro"
	PointOfSaleOnline = "online"
)

// ValidPointOfSaleKind reports whether kind is a known point-of-sale kind.
func ValidPointOfSaleKind(kind string) bool {
	switch kind {
	case PointOfSaleTienda, PointOfSaleMetro, PointOfSaleOnline:
		return true
	}
	return false
}

type PointOfSale struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre"`
	Ubicacion string    `json:"ubicacion" db:"ubicacion"`
	Tipo      string    `json:"tipo" db:"tipo"`
}
