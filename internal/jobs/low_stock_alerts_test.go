package jobs

import (
	"context"
	"errors"
	"testing"

	"librostock/internal/models"
	"librostock/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockInventoryService mocks the InventoryService interface for testing
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) EnsureRecord(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) GetStock(ctx context.Context, bookID uuid.UUID) (*models.InventoryRecord, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) List(ctx context.Context, nameFilter string) ([]*models.InventoryRecord, error) {
	args := m.Called(ctx, nameFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) AdjustStock(ctx context.Context, bookID uuid.UUID, delta int) (*models.InventoryRecord, error) {
	args := m.Called(ctx, bookID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) SetStock(ctx context.Context, bookID uuid.UUID, target int) (*models.InventoryRecord, error) {
	args := m.Called(ctx, bookID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryRecord), args.Error(1)
}

func (m *MockInventoryService) LowStock(ctx context.Context) ([]*models.LowStockEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LowStockEntry), args.Error(1)
}

func (m *MockInventoryService) RecordMovement(ctx context.Context, req *services.RecordMovementRequest) (*models.Movement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movement), args.Error(1)
}

func (m *MockInventoryService) ListMovements(ctx context.Context, kindFilter string) ([]*models.Movement, error) {
	args := m.Called(ctx, kindFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movement), args.Error(1)
}

type SchedulerTestSuite struct {
	suite.Suite
	mockSvc   *MockInventoryService
	scheduler *Scheduler
}

func (suite *SchedulerTestSuite) SetupTest() {
	suite.mockSvc = &MockInventoryService{}
	suite.mockSvc.Test(suite.T())

	scheduler, err := NewScheduler(suite.mockSvc)
	assert.NoError(suite.T(), err)
	suite.scheduler = scheduler
}

func (suite *SchedulerTestSuite) TearDownTest() {
	suite.mockSvc.AssertExpectations(suite.T())
	assert.NoError(suite.T(), suite.scheduler.Stop())
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (suite *SchedulerTestSuite) TestProcessLowStockAlerts_ReportsBooksBelowMinimum() {
	entries := []*models.LowStockEntry{
		{BookID: uuid.New(), Nombre: "El Aleph", Stock: 1, StockMin: 5},
		{BookID: uuid.New(), Nombre: "Rayuela", Stock: 2, StockMin: 4},
	}
	suite.mockSvc.On("LowStock", mock.Anything).Return(entries, nil)

	err := suite.scheduler.processLowStockAlerts()
	assert.NoError(suite.T(), err)
}

func (suite *SchedulerTestSuite) TestProcessLowStockAlerts_NothingBelowMinimum() {
	suite.mockSvc.On("LowStock", mock.Anything).Return([]*models.LowStockEntry{}, nil)

	err := suite.scheduler.processLowStockAlerts()
	assert.NoError(suite.T(), err)
}

func (suite *SchedulerTestSuite) TestProcessLowStockAlerts_PropagatesError() {
	suite.mockSvc.On("LowStock", mock.Anything).Return(nil, errors.New("database connection failed"))

	err := suite.scheduler.processLowStockAlerts()
	assert.Error(suite.T(), err)
}
