package repositories

import (
	"context"

	"librostock/internal/models"

	"github.com/google/uuid"
)

type PointOfSaleRepository interface {
	Create(ctx context.Context, pos *models.PointOfSale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error)
	List(ctx context.Context) ([]*models.PointOfSale, error)
	Update(ctx context.Context, pos *models.PointOfSale) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pointOfSaleRepo struct {
	db DB
}

func NewPointOfSaleRepo(db DB) PointOfSaleRepository {
	return &pointOfSaleRepo{db: db}
}

func (r *pointOfSaleRepo) Create(ctx context.Context, pos *models.PointOfSale) error {
	query := `
		INSERT INTO punto_venta (id, nombre, ubicacion, tipo)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, pos.ID, pos.Nombre, pos.Ubicacion, pos.Tipo)
	return err
}

func (r *pointOfSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error) {
	pos := &models.PointOfSale{}
	query := `
		SELECT id, nombre, ubicacion, tipo
		FROM punto_venta
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&pos.ID, &pos.Nombre, &pos.Ubicacion, &pos.Tipo)
	if err != nil {
		return nil, err
	}
	return pos, nil
}

func (r *pointOfSaleRepo) List(ctx context.Context) ([]*models.PointOfSale, error) {
	query := `
		SELECT id, nombre, ubicacion, tipo
		FROM punto_venta
		ORDER BY nombre ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*models.PointOfSale
	for rows.Next() {
		pos := &models.PointOfSale{}
		if err := rows.Scan(&pos.ID, &pos.Nombre, &pos.Ubicacion, &pos.Tipo); err != nil {
			return nil, err
		}
		points = append(points, pos)
	}
	return points, rows.Err()
}

func (r *pointOfSaleRepo) Update(ctx context.Context, pos *models.PointOfSale) error {
	query := `
		UPDATE punto_venta
		SET nombre = $1, ubicacion = $2, tipo = $3
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, pos.Nombre, pos.Ubicacion, pos.Tipo, pos.ID)
	return err
}

func (r *pointOfSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM punto_venta WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
