package repositories

import (
	"context"

	"librostock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InventoryRepository interface {
	Create(ctx context.Context, record *models.InventoryRecord) error
	GetByBookID(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error)
	List(ctx context.Context, nameFilter string) ([]*models.InventoryRecord, error)

	// LockByBookID and LockByID read the row under an exclusive lock that
	// is held until the surrounding transaction commits or rolls back.
	// Concurrent writers to the same record serialize here.
	LockByBookID(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*models.InventoryRecord, error)
	LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.InventoryRecord, error)
	UpdateStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, stock int) error

	LowStock(ctx context.Context) ([]*models.LowStockEntry, error)
}

type inventoryRepo struct {
	db DB
}

func NewInventoryRepo(db DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Create(ctx context.Context, record *models.InventoryRecord) error {
	query := `
		INSERT INTO inventario_libro (id, libro_id, stock, updated_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.BookID, record.Stock)
	return err
}

func (r *inventoryRepo) GetByBookID(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error) {
	record := &models.InventoryRecord{}
	query := `
		SELECT id, libro_id, stock, updated_at
		FROM inventario_libro
		WHERE libro_id = $1
	`
	err := r.db.QueryRow(ctx, query, bookID).Scan(&record.ID, &record.BookID, &record.Stock, &record.LastUpdated)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *inventoryRepo) List(ctx context.Context, nameFilter string) ([]*models.InventoryRecord, error) {
	query := `
		SELECT i.id, i.libro_id, i.stock, i.updated_at
		FROM inventario_libro i
		JOIN libros l ON l.id = i.libro_id
		ORDER BY l.nombre ASC
	`
	args := []any{}
	if nameFilter != "" {
		query = `
		SELECT i.id, i.libro_id, i.stock, i.updated_at
		FROM inventario_libro i
		JOIN libros l ON l.id = i.libro_id
		WHERE l.nombre ILIKE $1
		ORDER BY l.nombre ASC
	`
		args = append(args, "%"+nameFilter+"%")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.InventoryRecord
	for rows.Next() {
		record := &models.InventoryRecord{}
		if err := rows.Scan(&record.ID, &record.BookID, &record.Stock, &record.LastUpdated); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *inventoryRepo) LockByBookID(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*models.InventoryRecord, error) {
	record := &models.InventoryRecord{}
	query := `
		SELECT id, libro_id, stock, updated_at
		FROM inventario_libro
		WHERE libro_id = $1
		FOR UPDATE
	`
	err := tx.QueryRow(ctx, query, bookID).Scan(&record.ID, &record.BookID, &record.Stock, &record.LastUpdated)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *inventoryRepo) LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.InventoryRecord, error) {
	record := &models.InventoryRecord{}
	query := `
		SELECT id, libro_id, stock, updated_at
		FROM inventario_libro
		WHERE id = $1
		FOR UPDATE
	`
	err := tx.QueryRow(ctx, query, id).Scan(&record.ID, &record.BookID, &record.Stock, &record.LastUpdated)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *inventoryRepo) UpdateStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, stock int) error {
	query := `
		UPDATE inventario_libro
		SET stock = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := tx.Exec(ctx, query, stock, id)
	return err
}

func (r *inventoryRepo) LowStock(ctx context.Context) ([]*models.LowStockEntry, error) {
	query := `
		SELECT l.id, l.nombre, i.stock, l.stock_minimo
		FROM inventario_libro i
		JOIN libros l ON l.id = i.libro_id
		WHERE i.stock < l.stock_minimo
		ORDER BY l.nombre ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LowStockEntry
	for rows.Next() {
		entry := &models.LowStockEntry{}
		if err := rows.Scan(&entry.BookID, &entry.Nombre, &entry.Stock, &entry.StockMin); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
