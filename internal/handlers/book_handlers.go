package handlers

import (
	"net/http"

	"librostock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookHandlers handles book catalog HTTP requests
type BookHandlers struct {
	bookService services.BookService
}

func NewBookHandlers(bookService services.BookService) *BookHandlers {
	return &BookHandlers{bookService: bookService}
}

// CreateBook handles creating a new book
func (h *BookHandlers) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	book, err := h.bookService.Create(ctx, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, book)
}

// ListBooks handles listing books with an optional name filter
func (h *BookHandlers) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.List(ctx, c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list books")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"libros": books,
	})
}

// GetBook handles getting book details by ID
func (h *BookHandlers) GetBook(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID format")
	}

	book, err := h.bookService.GetByID(ctx, bookID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, book)
}

// PatchBook handles partial updates of a book's mutable fields
func (h *BookHandlers) PatchBook(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID format")
	}

	var patch services.BookPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	book, err := h.bookService.Patch(ctx, bookID, &patch)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, book)
}

// DeleteBook handles deleting a book
func (h *BookHandlers) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID format")
	}

	if err := h.bookService.Delete(ctx, bookID); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
