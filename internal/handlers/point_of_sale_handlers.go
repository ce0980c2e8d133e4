package handlers

import (
	"net/http"

	"librostock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PointOfSaleHandlers handles point-of-sale HTTP requests
type PointOfSaleHandlers struct {
	posService services.PointOfSaleService
}

func NewPointOfSaleHandlers(posService services.PointOfSaleService) *PointOfSaleHandlers {
	return &PointOfSaleHandlers{posService: posService}
}

// CreatePointOfSale handles creating a new point of sale
func (h *PointOfSaleHandlers) CreatePointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreatePointOfSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	pos, err := h.posService.Create(ctx, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, pos)
}

// ListPointsOfSale handles listing all points of sale
func (h *PointOfSaleHandlers) ListPointsOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	points, err := h.posService.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list points of sale")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"puntos_venta": points,
	})
}

// GetPointOfSale handles getting point-of-sale details by ID
func (h *PointOfSaleHandlers) GetPointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	posID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid point of sale ID format")
	}

	pos, err := h.posService.GetByID(ctx, posID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, pos)
}

// PatchPointOfSale handles partial updates of a point of sale
func (h *PointOfSaleHandlers) PatchPointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	posID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid point of sale ID format")
	}

	var patch services.PointOfSalePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	pos, err := h.posService.Patch(ctx, posID, &patch)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, pos)
}

// DeletePointOfSale handles deleting a point of sale
func (h *PointOfSaleHandlers) DeletePointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	posID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid point of sale ID format")
	}

	if err := h.posService.Delete(ctx, posID); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
