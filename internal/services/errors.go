package services

import (
	"errors"
	"fmt"
)

// Failure taxonomy surfaced to the HTTP layer. Handlers translate these to
// status codes; everything else bubbles up as a server error.
var (
	// Not-found family.
	ErrBookNotFound        = errors.New("book not found")
	ErrInventoryNotFound   = errors.New("inventory not found for that book")
	ErrUserNotFound        = errors.New("user not found")
	ErrPointOfSaleNotFound = errors.New("point of sale not found")

	// Invalid-input family: malformed or referentially unresolvable fields.
	ErrValidation      = errors.New("validation failed")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrUnknownUser     = errors.New("referenced user does not exist")
	ErrUnknownPOS      = errors.New("referenced point of sale does not exist")
	ErrInvalidMovement = errors.New("movement kind must be entrada, salida, venta or ajuste")

	// Invalid-state family: the operation would break the non-negative
	// stock invariant. Callers must not retry these blindly.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNegativeStock     = errors.New("adjustment would leave stock negative")

	// Transient: lock wait on the inventory row timed out. Safe to retry.
	ErrInventoryBusy = errors.New("inventory record is locked by another operation, retry")

	ErrBookInUse          = errors.New("book still has inventory records")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
