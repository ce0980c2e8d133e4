package repositories

import (
	"context"

	"librostock/internal/models"

	"github.com/jackc/pgx/v5"
)

// MovementRepository appends to and reads the movement ledger. The ledger
// is append-only: there is deliberately no update or delete here.
type MovementRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, movement *models.Movement) error
	List(ctx context.Context, kindFilter string) ([]*models.Movement, error)
}

type movementRepo struct {
	db DB
}

func NewMovementRepo(db DB) MovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) Insert(ctx context.Context, tx pgx.Tx, movement *models.Movement) error {
	query := `
		INSERT INTO movimiento_libro (id, inventario_id, tipo, cantidad, usuario_id, observaciones, fecha_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.Exec(ctx, query, movement.ID, movement.InventoryID, movement.Tipo, movement.Cantidad, movement.UserID, movement.Notes, movement.OccurredAt)
	return err
}

func (r *movementRepo) List(ctx context.Context, kindFilter string) ([]*models.Movement, error) {
	query := `
		SELECT id, inventario_id, tipo, cantidad, usuario_id, observaciones, fecha_movimiento
		FROM movimiento_libro
		ORDER BY fecha_movimiento DESC
	`
	args := []any{}
	if kindFilter != "" {
		query = `
		SELECT id, inventario_id, tipo, cantidad, usuario_id, observaciones, fecha_movimiento
		FROM movimiento_libro
		WHERE tipo = $1
		ORDER BY fecha_movimiento DESC
	`
		args = append(args, kindFilter)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.Movement
	for rows.Next() {
		movement := &models.Movement{}
		if err := rows.Scan(&movement.ID, &movement.InventoryID, &movement.Tipo, &movement.Cantidad, &movement.UserID, &movement.Notes, &movement.OccurredAt); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}
