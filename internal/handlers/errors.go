package handlers

import (
	"errors"
	"net/http"

	"librostock/internal/services"

	"github.com/labstack/echo/v4"
)

// serviceError translates the service-layer failure taxonomy to HTTP:
// not-found → 404, invalid input or state → 400, lock-wait timeout → 503
// with Retry-After semantics left to the client. Anything unrecognized is
// a 500 with a generic message.
func serviceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrBookNotFound),
		errors.Is(err, services.ErrInventoryNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPointOfSaleNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUnknownUser),
		errors.Is(err, services.ErrUnknownPOS),
		errors.Is(err, services.ErrInvalidMovement),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrNegativeStock),
		errors.Is(err, services.ErrBookInUse):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrInventoryBusy):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "operation could not be completed")
}
