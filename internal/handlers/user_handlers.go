package handlers

import (
	"net/http"

	"librostock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandlers handles user management HTTP requests
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// CreateUser handles creating a new user
func (h *UserHandlers) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.Create(ctx, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

// ListUsers handles listing users with an optional name/email filter
func (h *UserHandlers) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx, c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list users")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"usuarios": users,
	})
}

// GetUser handles getting user details by ID
func (h *UserHandlers) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID format")
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// PatchUser handles partial updates of a user's mutable fields
func (h *UserHandlers) PatchUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID format")
	}

	var patch services.UserPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.Patch(ctx, userID, &patch)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles deleting a user
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID format")
	}

	if err := h.userService.Delete(ctx, userID); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
