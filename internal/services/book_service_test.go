package services

import (
	"context"
	"errors"
	"testing"

	"librostock/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context, nameFilter string) ([]*models.Book, error) {
	args := m.Called(ctx, nameFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BookServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBookRepository
	service  BookService
}

func (suite *BookServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockBookRepository{}
	suite.service = NewBookService(suite.mockRepo)
	suite.mockRepo.Test(suite.T())
}

func (suite *BookServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookServiceTestSuite))
}

func (suite *BookServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	req := &CreateBookRequest{
		Nombre:   "Cien anos de soledad",
		Autor:    "Gabriel Garcia Marquez",
		Precio:   32.90,
		StockMin: 3,
	}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), req.Nombre, book.Nombre)
	assert.Equal(suite.T(), req.Autor, book.Autor)
	assert.NotEqual(suite.T(), uuid.Nil, book.ID)
}

func (suite *BookServiceTestSuite) TestCreate_TrimsWhitespace() {
	ctx := context.Background()
	req := &CreateBookRequest{
		Nombre: "  El Aleph ",
		Autor:  " Jorge Luis Borges  ",
		Precio: 18.00,
	}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "El Aleph", book.Nombre)
	assert.Equal(suite.T(), "Jorge Luis Borges", book.Autor)
}

func (suite *BookServiceTestSuite) TestCreate_MissingFields() {
	ctx := context.Background()

	book, err := suite.service.Create(ctx, &CreateBookRequest{Nombre: "", Autor: "Alguien"})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Nil(suite.T(), book)
}

func (suite *BookServiceTestSuite) TestCreate_NegativePrice() {
	ctx := context.Background()

	book, err := suite.service.Create(ctx, &CreateBookRequest{
		Nombre: "Pedro Paramo",
		Autor:  "Juan Rulfo",
		Precio: -1,
	})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Nil(suite.T(), book)
}

func (suite *BookServiceTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	id := uuid.New()

	suite.mockRepo.On("GetByID", ctx, id).Return(nil, pgx.ErrNoRows)

	book, err := suite.service.GetByID(ctx, id)
	assert.ErrorIs(suite.T(), err, ErrBookNotFound)
	assert.Nil(suite.T(), book)
}

func (suite *BookServiceTestSuite) TestPatch_PartialUpdate() {
	ctx := context.Background()
	id := uuid.New()
	existing := &models.Book{
		ID:       id,
		Nombre:   "Rayuela",
		Autor:    "Julio Cortazar",
		Precio:   25.50,
		StockMin: 5,
	}
	newPrice := 27.00

	suite.mockRepo.On("GetByID", ctx, id).Return(existing, nil)
	suite.mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := suite.service.Patch(ctx, id, &BookPatch{Precio: &newPrice})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 27.00, book.Precio)
	assert.Equal(suite.T(), "Rayuela", book.Nombre)
	assert.Equal(suite.T(), 5, book.StockMin)
}

func (suite *BookServiceTestSuite) TestPatch_EmptyNameRejected() {
	ctx := context.Background()
	id := uuid.New()
	empty := "   "

	suite.mockRepo.On("GetByID", ctx, id).Return(&models.Book{ID: id, Nombre: "Rayuela", Autor: "Julio Cortazar"}, nil)

	book, err := suite.service.Patch(ctx, id, &BookPatch{Nombre: &empty})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Nil(suite.T(), book)
}

func (suite *BookServiceTestSuite) TestDelete_Success() {
	ctx := context.Background()
	id := uuid.New()

	suite.mockRepo.On("GetByID", ctx, id).Return(&models.Book{ID: id, Nombre: "Ficciones", Autor: "Jorge Luis Borges"}, nil)
	suite.mockRepo.On("Delete", ctx, id).Return(nil)

	err := suite.service.Delete(ctx, id)
	assert.NoError(suite.T(), err)
}

func (suite *BookServiceTestSuite) TestDelete_WithInventoryRejected() {
	ctx := context.Background()
	id := uuid.New()

	suite.mockRepo.On("GetByID", ctx, id).Return(&models.Book{ID: id, Nombre: "Ficciones", Autor: "Jorge Luis Borges"}, nil)
	suite.mockRepo.On("Delete", ctx, id).Return(&pgconn.PgError{Code: "23503"})

	err := suite.service.Delete(ctx, id)
	assert.ErrorIs(suite.T(), err, ErrBookInUse)
}

func (suite *BookServiceTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	id := uuid.New()

	suite.mockRepo.On("GetByID", ctx, id).Return(nil, pgx.ErrNoRows)

	err := suite.service.Delete(ctx, id)
	assert.ErrorIs(suite.T(), err, ErrBookNotFound)
}

func (suite *BookServiceTestSuite) TestList_PassesFilterThrough() {
	ctx := context.Background()
	books := []*models.Book{{ID: uuid.New(), Nombre: "Ficciones", Autor: "Jorge Luis Borges"}}

	suite.mockRepo.On("List", ctx, "ficcion").Return(books, nil)

	result, err := suite.service.List(ctx, "ficcion")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
}

func (suite *BookServiceTestSuite) TestList_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("List", ctx, "").Return(nil, errors.New("database connection failed"))

	result, err := suite.service.List(ctx, "")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
}
