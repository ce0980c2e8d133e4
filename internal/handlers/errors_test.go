package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"librostock/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"book not found", services.ErrBookNotFound, http.StatusNotFound},
		{"inventory not found", services.ErrInventoryNotFound, http.StatusNotFound},
		{"user not found", services.ErrUserNotFound, http.StatusNotFound},
		{"point of sale not found", services.ErrPointOfSaleNotFound, http.StatusNotFound},
		{"validation failure", services.ErrValidation, http.StatusBadRequest},
		{"email taken", services.ErrEmailTaken, http.StatusBadRequest},
		{"unknown movement user", services.ErrUnknownUser, http.StatusBadRequest},
		{"unknown point of sale", services.ErrUnknownPOS, http.StatusBadRequest},
		{"invalid movement", services.ErrInvalidMovement, http.StatusBadRequest},
		{"insufficient stock", services.ErrInsufficientStock, http.StatusBadRequest},
		{"negative stock", services.ErrNegativeStock, http.StatusBadRequest},
		{"book still referenced", services.ErrBookInUse, http.StatusBadRequest},
		{"row lock wait timeout", services.ErrInventoryBusy, http.StatusServiceUnavailable},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unexpected failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := serviceError(tc.err)
			assert.Equal(t, tc.status, httpErr.Code)
		})
	}
}

func TestServiceErrorHidesInternalDetails(t *testing.T) {
	httpErr := serviceError(errors.New("pq: relation does not exist"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.NotContains(t, httpErr.Message, "relation")
}

func TestServiceErrorKeepsWrappedValidationMessage(t *testing.T) {
	wrapped := serviceError(services.ErrValidation)
	assert.Equal(t, http.StatusBadRequest, wrapped.Code)
}

func TestCreateMovementRejectsBadKindBeforeServiceCall(t *testing.T) {
	e := echo.New()
	h := NewMovementHandlers(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/movimientos",
		strings.NewReader(`{"inventario_id":"50d5aa3f-65b0-4f0c-9b8a-6de32c9a13f9","tipo":"prestamo","cantidad":3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateMovement(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateMovementRejectsNonPositiveQuantity(t *testing.T) {
	e := echo.New()
	h := NewMovementHandlers(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/movimientos",
		strings.NewReader(`{"inventario_id":"50d5aa3f-65b0-4f0c-9b8a-6de32c9a13f9","tipo":"venta","cantidad":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateMovement(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
