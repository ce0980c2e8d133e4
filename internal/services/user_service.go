package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"librostock/internal/models"
	"librostock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Nombre        string     `json:"nombre"`
	Email         string     `json:"email"`
	Password      string     `json:"contrasena"`
	Rol           string     `json:"rol"`
	PointOfSaleID *uuid.UUID `json:"punto_venta_id"`
}

// UserPatch lists the mutable fields of a user. Nil means "leave as is".
// The zero UUID for PointOfSaleID detaches the user from any point of sale.
type UserPatch struct {
	Nombre        *string    `json:"nombre"`
	Email         *string    `json:"email"`
	Password      *string    `json:"contrasena"`
	Rol           *string    `json:"rol"`
	PointOfSaleID *uuid.UUID `json:"punto_venta_id"`
}

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, filter string) ([]*models.User, error)
	Patch(ctx context.Context, id uuid.UUID, patch *UserPatch) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	EnsureAdminUser(ctx context.Context) error
}

type userService struct {
	userRepo repositories.UserRepository
	posRepo  repositories.PointOfSaleRepository
}

func NewUserService(userRepo repositories.UserRepository, posRepo repositories.PointOfSaleRepository) UserService {
	return &userService{userRepo: userRepo, posRepo: posRepo}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Nombre) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, validationError("nombre and email are required")
	}
	if len(req.Password) < 6 {
		return nil, validationError("contrasena must be at least 6 characters")
	}
	if !models.ValidRole(req.Rol) {
		return nil, validationError("rol must be admin or vendedor")
	}
	if req.PointOfSaleID != nil {
		if _, err := s.posRepo.GetByID(ctx, *req.PointOfSaleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrUnknownPOS
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:            uuid.New(),
		Nombre:        strings.TrimSpace(req.Nombre),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  string(hash),
		Rol:           req.Rol,
		PointOfSaleID: req.PointOfSaleID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filter string) ([]*models.User, error) {
	return s.userRepo.List(ctx, filter)
}

func (s *userService) Patch(ctx context.Context, id uuid.UUID, patch *UserPatch) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil {
		if strings.TrimSpace(*patch.Nombre) == "" {
			return nil, validationError("nombre cannot be empty")
		}
		user.Nombre = strings.TrimSpace(*patch.Nombre)
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Rol != nil {
		if !models.ValidRole(*patch.Rol) {
			return nil, validationError("rol must be admin or vendedor")
		}
		user.Rol = *patch.Rol
	}
	if patch.PointOfSaleID != nil {
		if *patch.PointOfSaleID == uuid.Nil {
			user.PointOfSaleID = nil
		} else {
			if _, err := s.posRepo.GetByID(ctx, *patch.PointOfSaleID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, ErrUnknownPOS
				}
				return nil, err
			}
			user.PointOfSaleID = patch.PointOfSaleID
		}
	}
	if patch.Password != nil {
		if len(*patch.Password) < 6 {
			return nil, validationError("contrasena must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// EnsureAdminUser seeds the default admin account when the users table is
// empty. Called once from main after migration; idempotent.
func (s *userService) EnsureAdminUser(ctx context.Context) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:           uuid.New(),
		Nombre:       "Administrador",
		Email:        "admin@admin.com",
		PasswordHash: string(hash),
		Rol:          models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Println("WARNING: seeded default admin user admin@admin.com, change the password")
	return nil
}
