package handlers

import (
	"net/http"
	"time"

	"librostock/internal/common"
	"librostock/internal/models"
	"librostock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MovementHandlers handles movement ledger HTTP requests
type MovementHandlers struct {
	inventoryService services.InventoryService
	exportService    services.ExportService
}

func NewMovementHandlers(inventoryService services.InventoryService, exportService services.ExportService) *MovementHandlers {
	return &MovementHandlers{
		inventoryService: inventoryService,
		exportService:    exportService,
	}
}

// CreateMovementRequest represents the movement creation payload
type CreateMovementRequest struct {
	InventoryID uuid.UUID  `json:"inventario_id"`
	Tipo        string     `json:"tipo"`
	Cantidad    int        `json:"cantidad"`
	UserID      *uuid.UUID `json:"usuario_id"`
	OccurredAt  *time.Time `json:"fecha_movimiento"`
	Notes       *string    `json:"observaciones"`
}

// CreateMovement handles recording a typed stock movement
func (h *MovementHandlers) CreateMovement(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateMovementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if !models.ValidMovementKind(req.Tipo) {
		return echo.NewHTTPError(http.StatusBadRequest, "tipo must be one of entrada, salida, venta, ajuste")
	}
	if req.Cantidad <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cantidad must be a positive integer")
	}

	// Attribute the movement to the authenticated user unless the payload
	// names someone else.
	if req.UserID == nil {
		if userID, ok := common.GetUserIDFromContext(ctx); ok {
			req.UserID = &userID
		}
	}

	movement, err := h.inventoryService.RecordMovement(ctx, &services.RecordMovementRequest{
		InventoryID: req.InventoryID,
		Tipo:        req.Tipo,
		Cantidad:    req.Cantidad,
		UserID:      req.UserID,
		OccurredAt:  req.OccurredAt,
		Notes:       req.Notes,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, movement)
}

// ListMovements handles listing ledger entries newest-first, with an
// optional kind filter
func (h *MovementHandlers) ListMovements(c echo.Context) error {
	ctx := c.Request().Context()

	kind := c.QueryParam("tipo")
	if kind != "" && !models.ValidMovementKind(kind) {
		return echo.NewHTTPError(http.StatusBadRequest, "tipo must be one of entrada, salida, venta, ajuste")
	}

	movements, err := h.inventoryService.ListMovements(ctx, kind)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"movimientos": movements,
	})
}

// ExportMovements handles exporting the ledger as CSV to object storage
// and returns a short-lived download URL
func (h *MovementHandlers) ExportMovements(c echo.Context) error {
	ctx := c.Request().Context()

	kind := c.QueryParam("tipo")
	if kind != "" && !models.ValidMovementKind(kind) {
		return echo.NewHTTPError(http.StatusBadRequest, "tipo must be one of entrada, salida, venta, ajuste")
	}

	url, err := h.exportService.ExportMovements(ctx, kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export movements")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url": url,
	})
}
