package services

import (
	"context"
	"testing"

	"librostock/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter string) ([]*models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockPointOfSaleRepository struct {
	mock.Mock
}

func (m *MockPointOfSaleRepository) Create(ctx context.Context, pos *models.PointOfSale) error {
	args := m.Called(ctx, pos)
	return args.Error(0)
}

func (m *MockPointOfSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointOfSale), args.Error(1)
}

func (m *MockPointOfSaleRepository) List(ctx context.Context) ([]*models.PointOfSale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PointOfSale), args.Error(1)
}

func (m *MockPointOfSaleRepository) Update(ctx context.Context, pos *models.PointOfSale) error {
	args := m.Called(ctx, pos)
	return args.Error(0)
}

func (m *MockPointOfSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUsers *MockUserRepository
	mockPOS   *MockPointOfSaleRepository
	service   UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUsers = &MockUserRepository{}
	suite.mockPOS = &MockPointOfSaleRepository{}
	suite.service = NewUserService(suite.mockUsers, suite.mockPOS)
	suite.mockUsers.Test(suite.T())
	suite.mockPOS.Test(suite.T())
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockPOS.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestCreate_HashesPasswordAndNormalizesEmail() {
	ctx := context.Background()
	req := &CreateUserRequest{
		Nombre:   "Ana Torres",
		Email:    " Ana.Torres@Libreria.com ",
		Password: "secreto123",
		Rol:      models.RoleVendedor,
	}

	suite.mockUsers.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ana.torres@libreria.com", user.Email)
	assert.NotEqual(suite.T(), "secreto123", user.PasswordHash)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secreto123")))
}

func (suite *UserServiceTestSuite) TestCreate_ShortPasswordRejected() {
	ctx := context.Background()

	user, err := suite.service.Create(ctx, &CreateUserRequest{
		Nombre:   "Ana",
		Email:    "ana@libreria.com",
		Password: "abc",
		Rol:      models.RoleVendedor,
	})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Nil(suite.T(), user)
}

func (suite *UserServiceTestSuite) TestCreate_InvalidRoleRejected() {
	ctx := context.Background()

	user, err := suite.service.Create(ctx, &CreateUserRequest{
		Nombre:   "Ana",
		Email:    "ana@libreria.com",
		Password: "secreto123",
		Rol:      "gerente",
	})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Nil(suite.T(), user)
}

func (suite *UserServiceTestSuite) TestCreate_UnknownPointOfSale() {
	ctx := context.Background()
	posID := uuid.New()

	suite.mockPOS.On("GetByID", ctx, posID).Return(nil, pgx.ErrNoRows)

	user, err := suite.service.Create(ctx, &CreateUserRequest{
		Nombre:        "Ana",
		Email:         "ana@libreria.com",
		Password:      "secreto123",
		Rol:           models.RoleVendedor,
		PointOfSaleID: &posID,
	})
	assert.ErrorIs(suite.T(), err, ErrUnknownPOS)
	assert.Nil(suite.T(), user)
}

func (suite *UserServiceTestSuite) TestCreate_DuplicateEmail() {
	ctx := context.Background()

	suite.mockUsers.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Return(&pgconn.PgError{Code: "23505"})

	user, err := suite.service.Create(ctx, &CreateUserRequest{
		Nombre:   "Ana",
		Email:    "ana@libreria.com",
		Password: "secreto123",
		Rol:      models.RoleAdmin,
	})
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
	assert.Nil(suite.T(), user)
}

func (suite *UserServiceTestSuite) TestPatch_RehashesPassword() {
	ctx := context.Background()
	id := uuid.New()
	existing := &models.User{
		ID:           id,
		Nombre:       "Ana Torres",
		Email:        "ana@libreria.com",
		PasswordHash: "old-hash",
		Rol:          models.RoleVendedor,
	}
	newPassword := "nuevosecreto"

	suite.mockUsers.On("GetByID", ctx, id).Return(existing, nil)
	suite.mockUsers.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.Patch(ctx, id, &UserPatch{Password: &newPassword})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)))
}

func (suite *UserServiceTestSuite) TestPatch_AssignsPointOfSale() {
	ctx := context.Background()
	id := uuid.New()
	posID := uuid.New()
	existing := &models.User{
		ID:           id,
		Nombre:       "Ana Torres",
		Email:        "ana@libreria.com",
		PasswordHash: "hash",
		Rol:          models.RoleVendedor,
	}

	suite.mockPOS.On("GetByID", ctx, posID).Return(&models.PointOfSale{ID: posID, Nombre: "Sucursal Centro", Tipo: models.PointOfSaleTienda}, nil)
	suite.mockUsers.On("GetByID", ctx, id).Return(existing, nil)
	suite.mockUsers.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.Patch(ctx, id, &UserPatch{PointOfSaleID: &posID})
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), user.PointOfSaleID)
	assert.Equal(suite.T(), posID, *user.PointOfSaleID)
}

func (suite *UserServiceTestSuite) TestPatch_ZeroUUIDClearsPointOfSale() {
	ctx := context.Background()
	id := uuid.New()
	posID := uuid.New()
	existing := &models.User{
		ID:            id,
		Nombre:        "Ana Torres",
		Email:         "ana@libreria.com",
		PasswordHash:  "hash",
		Rol:           models.RoleVendedor,
		PointOfSaleID: &posID,
	}
	clear := uuid.Nil

	suite.mockUsers.On("GetByID", ctx, id).Return(existing, nil)
	suite.mockUsers.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.Patch(ctx, id, &UserPatch{PointOfSaleID: &clear})
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), user.PointOfSaleID)
}

func (suite *UserServiceTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	id := uuid.New()

	suite.mockUsers.On("GetByID", ctx, id).Return(nil, pgx.ErrNoRows)

	err := suite.service.Delete(ctx, id)
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func (suite *UserServiceTestSuite) TestEnsureAdminUser_SeedsEmptyTable() {
	ctx := context.Background()

	suite.mockUsers.On("Count", ctx).Return(0, nil)
	suite.mockUsers.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Run(func(args mock.Arguments) {
		admin := args.Get(1).(*models.User)
		assert.Equal(suite.T(), "admin@admin.com", admin.Email)
		assert.Equal(suite.T(), models.RoleAdmin, admin.Rol)
		assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")))
	})

	err := suite.service.EnsureAdminUser(ctx)
	assert.NoError(suite.T(), err)
}

func (suite *UserServiceTestSuite) TestEnsureAdminUser_SkipsWhenUsersExist() {
	ctx := context.Background()

	suite.mockUsers.On("Count", ctx).Return(3, nil)

	err := suite.service.EnsureAdminUser(ctx)
	assert.NoError(suite.T(), err)
}
