package handlers

import (
	"net/http"

	"librostock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles inventory stock HTTP requests
type InventoryHandlers struct {
	inventoryService services.InventoryService
}

func NewInventoryHandlers(inventoryService services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventoryService: inventoryService}
}

// CreateInventory handles creating the inventory record for a book.
// Calling it again for the same book returns the existing record.
func (h *InventoryHandlers) CreateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := uuid.Parse(c.Param("libro_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID format")
	}

	record, err := h.inventoryService.EnsureRecord(ctx, bookID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, record)
}

// ListInventory handles listing all inventory records ordered by book
// name, with an optional book-name filter
func (h *InventoryHandlers) ListInventory(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.inventoryService.List(ctx, c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list inventory")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"inventario": records,
	})
}

// GetStock handles reading a book's current stock
func (h *InventoryHandlers) GetStock(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := uuid.Parse(c.Param("libro_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID format")
	}

	record, err := h.inventoryService.GetStock(ctx, bookID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, record)
}

// AdjustStockRequest represents a signed stock delta
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// AdjustStock handles adding or removing stock by a signed delta
func (h *InventoryHandlers) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := uuid.Parse(c.Param("libro_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID format")
	}

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	record, err := h.inventoryService.AdjustStock(ctx, bookID, req.Delta)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, record)
}

// SetStockRequest represents an absolute stock target
type SetStockRequest struct {
	Stock int `json:"stock"`
}

// SetStock handles overwriting a book's stock with an absolute value
func (h *InventoryHandlers) SetStock(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := uuid.Parse(c.Param("libro_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID format")
	}

	var req SetStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	// Negative targets never reach the engine.
	if req.Stock < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Stock cannot be negative")
	}

	record, err := h.inventoryService.SetStock(ctx, bookID, req.Stock)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, record)
}

// LowStock handles listing books whose stock is under their configured minimum
func (h *InventoryHandlers) LowStock(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.inventoryService.LowStock(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list low stock books")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stock_bajo": entries,
	})
}
