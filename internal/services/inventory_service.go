package services

import (
	"context"
	"errors"
	"time"

	"librostock/internal/models"
	"librostock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the engine reacts to.
const (
	pgUniqueViolation     = "23505"
	pgLockNotAvailable    = "55P03"
	pgForeignKeyViolation = "23503"
)

// how long a writer waits for the row lock before giving up with
// ErrInventoryBusy instead of queueing forever.
const lockWaitTimeout = "3s"

// RecordMovementRequest carries one ledger entry to be recorded against an
// inventory record.
type RecordMovementRequest struct {
	InventoryID uuid.UUID
	Tipo        string
	Cantidad    int
	UserID      *uuid.UUID
	OccurredAt  *time.Time
	Notes       *string
}

// InventoryService is the inventory ledger engine. It owns the relationship
// between a book's current stock counter and the append-only movement ledger
// that produced it, and keeps the counter non-negative under concurrent
// writers.
//
// All stock mutations run as: begin transaction, SELECT ... FOR UPDATE on
// the inventory row, compute, write, commit. Two writers against the same
// record serialize on the row lock in commit order; writers against
// different records never block each other.
type InventoryService interface {
	EnsureRecord(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error)
	GetStock(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error)
	List(ctx context.Context, nameFilter string) ([]*models.InventoryRecord, error)
	AdjustStock(ctx context.Context, bookID uuid.UUID, delta int) (*models.InventoryRecord, error)
	SetStock(ctx context.Context, bookID uuid.UUID, target int) (*models.InventoryRecord, error)
	LowStock(ctx context.Context) ([]*models.LowStockEntry, error)
	RecordMovement(ctx context.Context, req *RecordMovementRequest) (*models.Movement, error)
	ListMovements(ctx context.Context, kindFilter string) ([]*models.Movement, error)
}

type inventoryService struct {
	db            repositories.DB
	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.MovementRepository
	bookRepo      repositories.BookRepository
	userRepo      repositories.UserRepository
}

func NewInventoryService(db repositories.DB, inventoryRepo repositories.InventoryRepository, movementRepo repositories.MovementRepository, bookRepo repositories.BookRepository, userRepo repositories.UserRepository) InventoryService {
	return &inventoryService{
		db:            db,
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		bookRepo:      bookRepo,
		userRepo:      userRepo,
	}
}

// EnsureRecord creates the inventory record for a book with stock zero, or
// returns the existing one. Idempotent.
func (s *inventoryService) EnsureRecord(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	record, err := s.inventoryRepo.GetByBookID(ctx, bookID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	record = &models.InventoryRecord{
		ID:          uuid.New(),
		BookID:      bookID,
		Stock:       0,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.inventoryRepo.Create(ctx, record); err != nil {
		// Lost a create race on the libro_id unique constraint; the row
		// exists now, return it.
		if isPgError(err, pgUniqueViolation) {
			return s.inventoryRepo.GetByBookID(ctx, bookID)
		}
		return nil, err
	}
	return record, nil
}

func (s *inventoryService) GetStock(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error) {
	record, err := s.inventoryRepo.GetByBookID(ctx, bookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns every inventory record ordered by book name, optionally
// filtered by a book-name substring.
func (s *inventoryService) List(ctx context.Context, nameFilter string) ([]*models.InventoryRecord, error) {
	return s.inventoryRepo.List(ctx, nameFilter)
}

// AdjustStock applies a signed delta to a book's stock under the row lock.
// Deltas that would take the counter below zero are rejected without
// touching the row. Writes no ledger entry.
func (s *inventoryService) AdjustStock(ctx context.Context, bookID uuid.UUID, delta int) (*models.InventoryRecord, error) {
	var record *models.InventoryRecord
	err := s.withLockedTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.inventoryRepo.LockByBookID(ctx, tx, bookID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInventoryNotFound
			}
			return err
		}
		next := locked.Stock + delta
		if next < 0 {
			return ErrNegativeStock
		}
		if err := s.inventoryRepo.UpdateStock(ctx, tx, locked.ID, next); err != nil {
			return err
		}
		locked.Stock = next
		locked.LastUpdated = time.Now().UTC()
		record = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// SetStock overwrites a book's stock with an absolute value under the row
// lock. Negative targets are rejected before this is called. Writes no
// ledger entry.
func (s *inventoryService) SetStock(ctx context.Context, bookID uuid.UUID, target int) (*models.InventoryRecord, error) {
	var record *models.InventoryRecord
	err := s.withLockedTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.inventoryRepo.LockByBookID(ctx, tx, bookID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInventoryNotFound
			}
			return err
		}
		if err := s.inventoryRepo.UpdateStock(ctx, tx, locked.ID, target); err != nil {
			return err
		}
		locked.Stock = target
		locked.LastUpdated = time.Now().UTC()
		record = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]*models.LowStockEntry, error) {
	return s.inventoryRepo.LowStock(ctx)
}

// RecordMovement applies a typed movement to the locked inventory row and
// appends the ledger entry in the same transaction. Either both writes
// commit or neither does.
func (s *inventoryService) RecordMovement(ctx context.Context, req *RecordMovementRequest) (*models.Movement, error) {
	if !models.ValidMovementKind(req.Tipo) {
		return nil, ErrInvalidMovement
	}
	if req.Cantidad <= 0 {
		return nil, ErrInvalidMovement
	}

	var movement *models.Movement
	err := s.withLockedTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.inventoryRepo.LockByID(ctx, tx, req.InventoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInventoryNotFound
			}
			return err
		}

		if req.UserID != nil {
			if _, err := s.userRepo.GetByID(ctx, *req.UserID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrUnknownUser
				}
				return err
			}
		}

		next := locked.Stock
		if models.MovementIsInflow(req.Tipo) {
			next += req.Cantidad
		} else {
			if locked.Stock < req.Cantidad {
				return ErrInsufficientStock
			}
			next -= req.Cantidad
		}

		if err := s.inventoryRepo.UpdateStock(ctx, tx, locked.ID, next); err != nil {
			return err
		}

		occurredAt := time.Now().UTC()
		if req.OccurredAt != nil {
			occurredAt = *req.OccurredAt
		}
		movement = &models.Movement{
			ID:          uuid.New(),
			InventoryID: locked.ID,
			Tipo:        req.Tipo,
			Cantidad:    req.Cantidad,
			UserID:      req.UserID,
			Notes:       req.Notes,
			OccurredAt:  occurredAt,
		}
		return s.movementRepo.Insert(ctx, tx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, kindFilter string) ([]*models.Movement, error) {
	if kindFilter != "" && !models.ValidMovementKind(kindFilter) {
		return nil, ErrInvalidMovement
	}
	return s.movementRepo.List(ctx, kindFilter)
}

// withLockedTx runs fn inside a transaction with a bounded lock wait. A
// lock timeout maps to ErrInventoryBusy so callers can retry instead of
// queueing behind a stuck writer.
func (s *inventoryService) withLockedTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockWaitTimeout+"'"); err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if isPgError(err, pgLockNotAvailable) {
			return ErrInventoryBusy
		}
		return err
	}
	return tx.Commit(ctx)
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
