package handlers

import (
	"net/http"

	"librostock/internal/repositories"
	"librostock/internal/sessions"

	"github.com/labstack/echo/v4"
)

// HealthHandlers exposes liveness and readiness probes
type HealthHandlers struct {
	db       repositories.DB
	sessions sessions.Store
}

func NewHealthHandlers(db repositories.DB, store sessions.Store) *HealthHandlers {
	return &HealthHandlers{db: db, sessions: store}
}

// Health reports process liveness
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Ready reports whether the backing stores are reachable
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	status := http.StatusOK

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := h.sessions.Ping(ctx); err != nil {
		checks["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, checks)
}
