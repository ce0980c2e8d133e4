package repositories

import (
	"context"

	"librostock/internal/models"

	"github.com/google/uuid"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	List(ctx context.Context, nameFilter string) ([]*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookRepo struct {
	db DB
}

func NewBookRepo(db DB) BookRepository {
	return &bookRepo{db: db}
}

func (r *bookRepo) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO libros (id, nombre, autor, precio, stock_minimo, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, book.ID, book.Nombre, book.Autor, book.Precio, book.StockMin)
	return err
}

func (r *bookRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book := &models.Book{}
	query := `
		SELECT id, nombre, autor, precio, stock_minimo, fecha_creacion
		FROM libros
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&book.ID, &book.Nombre, &book.Autor, &book.Precio, &book.StockMin, &book.CreatedAt)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *bookRepo) List(ctx context.Context, nameFilter string) ([]*models.Book, error) {
	query := `
		SELECT id, nombre, autor, precio, stock_minimo, fecha_creacion
		FROM libros
		ORDER BY fecha_creacion DESC
	`
	args := []any{}
	if nameFilter != "" {
		query = `
		SELECT id, nombre, autor, precio, stock_minimo, fecha_creacion
		FROM libros
		WHERE nombre ILIKE $1
		ORDER BY fecha_creacion DESC
	`
		args = append(args, "%"+nameFilter+"%")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book := &models.Book{}
		if err := rows.Scan(&book.ID, &book.Nombre, &book.Autor, &book.Precio, &book.StockMin, &book.CreatedAt); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *bookRepo) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE libros
		SET nombre = $1, autor = $2, precio = $3, stock_minimo = $4
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, book.Nombre, book.Autor, book.Precio, book.StockMin, book.ID)
	return err
}

func (r *bookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM libros WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
