package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// ValidRole reports whether role is a known user role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendedor
}

type User struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Nombre        string     `json:"nombre" db:"nombre"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"` // Never serialize in JSON
	Rol           string     `json:"rol" db:"rol"`
	PointOfSaleID *uuid.UUID `json:"punto_venta_id" db:"punto_venta_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
