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

type CreatePointOfSaleRequest struct {
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion"`
	Tipo      string `json:"tipo"`
}

type PointOfSalePatch struct {
	Nombre    *string `json:"nombre"`
	Ubicacion *string `json:"ubicacion"`
	Tipo      *string `json:"tipo"`
}

type PointOfSaleService interface {
	Create(ctx context.Context, req *CreatePointOfSaleRequest) (*models.PointOfSale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error)
	List(ctx context.Context) ([]*models.PointOfSale, error)
	Patch(ctx context.Context, id uuid.UUID, patch *PointOfSalePatch) (*models.PointOfSale, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pointOfSaleService struct {
	posRepo repositories.PointOfSaleRepository
}

func NewPointOfSaleService(posRepo repositories.PointOfSaleRepository) PointOfSaleService {
	return &pointOfSaleService{posRepo: posRepo}
}

func (s *pointOfSaleService) Create(ctx context.Context, req *CreatePointOfSaleRequest) (*models.PointOfSale, error) {
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, validationError("nombre is required")
	}
	if !models.ValidPointOfSaleKind(req.Tipo) {
		return nil, validationError("tipo must be tienda, metro or online")
	}

	pos := &models.PointOfSale{
		ID:        uuid.New(),
		Nombre:    strings.TrimSpace(req.Nombre),
		Ubicacion: strings.TrimSpace(req.Ubicacion),
		Tipo:      req.Tipo,
	}
	if err := s.posRepo.Create(ctx, pos); err != nil {
		return nil, err
	}
	return pos, nil
}

func (s *pointOfSaleService) GetByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error) {
	pos, err := s.posRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPointOfSaleNotFound
		}
		return nil, err
	}
	return pos, nil
}

func (s *pointOfSaleService) List(ctx context.Context) ([]*models.PointOfSale, error) {
	return s.posRepo.List(ctx)
}

func (s *pointOfSaleService) Patch(ctx context.Context, id uuid.UUID, patch *PointOfSalePatch) (*models.PointOfSale, error) {
	pos, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil {
		if strings.TrimSpace(*patch.Nombre) == "" {
			return nil, validationError("nombre cannot be empty")
		}
		pos.Nombre = strings.TrimSpace(*patch.Nombre)
	}
	if patch.Ubicacion != nil {
		pos.Ubicacion = strings.TrimSpace(*patch.Ubicacion)
	}
	if patch.Tipo != nil {
		if !models.ValidPointOfSaleKind(*patch.Tipo) {
			return nil, validationError("tipo must be tienda, metro or online")
		}
		pos.Tipo = *patch.Tipo
	}

	if err := s.posRepo.Update(ctx, pos); err != nil {
		return nil, err
	}
	return pos, nil
}

func (s *pointOfSaleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.posRepo.Delete(ctx, id); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return validationError("point of sale still has users assigned")
		}
		return err
	}
	return nil
}
