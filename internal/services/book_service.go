package services

import (
	"context"
	"errors"
	"strings"

	"librostock/internal/models"
	"librostock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreateBookRequest struct {
	Nombre   string  `json:"nombre"`
	Autor    string  `json:"autor"`
	Precio   float64 `json:"precio"`
	StockMin int     `json:"stock_minimo"`
}

// BookPatch lists the mutable fields of a book. Nil means "leave as is".
// Identity and creation timestamp are not patchable.
type BookPatch struct {
	Nombre   *string  `json:"nombre"`
	Autor    *string  `json:"autor"`
	Precio   *float64 `json:"precio"`
	StockMin *int     `json:"stock_minimo"`
}

type BookService interface {
	Create(ctx context.Context, req *CreateBookRequest) (*models.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	List(ctx context.Context, nameFilter string) ([]*models.Book, error)
	Patch(ctx context.Context, id uuid.UUID, patch *BookPatch) (*models.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookService struct {
	bookRepo repositories.BookRepository
}

func NewBookService(bookRepo repositories.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) Create(ctx context.Context, req *CreateBookRequest) (*models.Book, error) {
	if strings.TrimSpace(req.Nombre) == "" || strings.TrimSpace(req.Autor) == "" {
		return nil, validationError("nombre and autor are required")
	}
	if req.Precio < 0 {
		return nil, validationError("precio cannot be negative")
	}
	if req.StockMin < 0 {
		return nil, validationError("stock_minimo cannot be negative")
	}

	book := &models.Book{
		ID:       uuid.New(),
		Nombre:   strings.TrimSpace(req.Nombre),
		Autor:    strings.TrimSpace(req.Autor),
		Precio:   req.Precio,
		StockMin: req.StockMin,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) List(ctx context.Context, nameFilter string) ([]*models.Book, error) {
	return s.bookRepo.List(ctx, nameFilter)
}

// Patch updates only the fields the caller supplied, validating each one.
func (s *bookService) Patch(ctx context.Context, id uuid.UUID, patch *BookPatch) (*models.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil {
		if strings.TrimSpace(*patch.Nombre) == "" {
			return nil, validationError("nombre cannot be empty")
		}
		book.Nombre = strings.TrimSpace(*patch.Nombre)
	}
	if patch.Autor != nil {
		if strings.TrimSpace(*patch.Autor) == "" {
			return nil, validationError("autor cannot be empty")
		}
		book.Autor = strings.TrimSpace(*patch.Autor)
	}
	if patch.Precio != nil {
		if *patch.Precio < 0 {
			return nil, validationError("precio cannot be negative")
		}
		book.Precio = *patch.Precio
	}
	if patch.StockMin != nil {
		if *patch.StockMin < 0 {
			return nil, validationError("stock_minimo cannot be negative")
		}
		book.StockMin = *patch.StockMin
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book. There is no cascade: a book that still has an
// inventory record fails on the foreign key and surfaces as ErrBookInUse.
func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return ErrBookInUse
		}
		return err
	}
	return nil
}
