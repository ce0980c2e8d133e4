package repositories

import (
	"context"

	"librostock/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter string) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type userRepo struct {
	db DB
}

func NewUserRepo(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO usuarios (id, nombre, email, password_hash, rol, punto_venta_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Nombre, user.Email, user.PasswordHash, user.Rol, user.PointOfSaleID)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, nombre, email, password_hash, rol, punto_venta_id, created_at
		FROM usuarios
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Nombre, &user.Email, &user.PasswordHash, &user.Rol, &user.PointOfSaleID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, nombre, email, password_hash, rol, punto_venta_id, created_at
		FROM usuarios
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Nombre, &user.Email, &user.PasswordHash, &user.Rol, &user.PointOfSaleID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) List(ctx context.Context, filter string) ([]*models.User, error) {
	query := `
		SELECT id, nombre, email, password_hash, rol, punto_venta_id, created_at
		FROM usuarios
		ORDER BY created_at ASC
	`
	args := []any{}
	if filter != "" {
		query = `
		SELECT id, nombre, email, password_hash, rol, punto_venta_id, created_at
		FROM usuarios
		WHERE nombre ILIKE $1 OR email ILIKE $1
		ORDER BY created_at ASC
	`
		args = append(args, "%"+filter+"%")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Nombre, &user.Email, &user.PasswordHash, &user.Rol, &user.PointOfSaleID, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE usuarios
		SET nombre = $1, email = $2, password_hash = $3, rol = $4, punto_venta_id = $5
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, user.Nombre, user.Email, user.PasswordHash, user.Rol, user.PointOfSaleID, user.ID)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM usuarios WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&count)
	return count, err
}
