package services_test

import (
	"context"
	"fmt"
	"testing"

	"inventaria/internal/forms"
	"inventaria/internal/models"
	"inventaria/internal/repositories"
	"inventaria/internal/services"
	"inventaria/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(name string) (*models.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAll() ([]models.Item, error) {
	args := m.Called()
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(id string) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByCategory(categoryID string) ([]models.Item, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher records published change events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishChange(ev events.Event) error {
	args := m.Called(ev)
	return args.Error(0)
}

func notFoundErr(format string, a ...interface{}) error {
	return fmt.Errorf(format+": %w", append(a, repositories.ErrNotFound)...)
}

func categoryForm(name, description string) forms.CategoryForm {
	return forms.NewCategoryForm(name, description)
}

func TestCategoryService_CreateCategory_New(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	publisher := new(MockPublisher)
	service := services.NewCategoryService(categoryRepo, itemRepo, publisher)

	categoryRepo.On("GetByName", "Tablet").Return(nil, notFoundErr("category named %q", "Tablet")).Once()
	categoryRepo.On("Create", mock.AnythingOfType("*models.Category")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Category).ID = "cat-1"
	}).Return(nil).Once()
	publisher.On("PublishChange", events.Event{Entity: "category", Action: "created", ID: "cat-1", Name: "Tablet"}).Return(nil).Once()

	category, existed, err := service.CreateCategory(categoryForm("Tablet", "Portable computers."))

	assert.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, "cat-1", category.ID)
	assert.Equal(t, "Tablet", category.Name)
	categoryRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCategoryService_CreateCategory_DuplicateNameIsIdempotent(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo, nil)

	existing := &models.Category{ID: "cat-1", Name: "Tablet", Description: "Portable computers."}
	categoryRepo.On("GetByName", "Tablet").Return(existing, nil).Once()

	category, existed, err := service.CreateCategory(categoryForm("Tablet", "Another description."))

	assert.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, existing, category)
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateCategory_NameCollisionWins(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo, nil)

	other := &models.Category{ID: "cat-2", Name: "Tablet"}
	categoryRepo.On("GetByName", "Tablet").Return(other, nil).Once()

	category, collided, err := service.UpdateCategory("cat-1", categoryForm("Tablet", "Edited description."))

	assert.NoError(t, err)
	assert.True(t, collided)
	assert.Equal(t, "cat-2", category.ID)
	categoryRepo.AssertNotCalled(t, "Update", mock.Anything)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateCategory_SameNameIsNotACollision(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo, nil)

	self := &models.Category{ID: "cat-1", Name: "Tablet"}
	categoryRepo.On("GetByName", "Tablet").Return(self, nil).Once()
	categoryRepo.On("GetByID", "cat-1").Return(self, nil).Once()
	categoryRepo.On("Update", mock.AnythingOfType("*models.Category")).Return(nil).Once()

	category, collided, err := service.UpdateCategory("cat-1", categoryForm("Tablet", "Edited description."))

	assert.NoError(t, err)
	assert.False(t, collided)
	assert.Equal(t, "cat-1", category.ID)
	assert.Equal(t, "Edited description.", category.Description)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateCategory_MissingCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo, nil)

	categoryRepo.On("GetByName", "Tablet").Return(nil, notFoundErr("category named %q", "Tablet")).Once()
	categoryRepo.On("GetByID", "ghost").Return(nil, notFoundErr("category with ID %s", "ghost")).Once()

	category, collided, err := service.UpdateCategory("ghost", categoryForm("Tablet", "Edited description."))

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.False(t, collided)
	assert.Nil(t, category)
	categoryRepo.AssertNotCalled(t, "Update", mock.Anything)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_DeleteCategory_BlockedByReferencingItems(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo, nil)

	category := &models.Category{ID: "cat-1", Name: "Tablet"}
	blocking := []models.Item{{ID: "item-1", Name: "Galaxy Tab", CategoryID: "cat-1"}}
	categoryRepo.On("GetByID", "cat-1").Return(category, nil).Once()
	itemRepo.On("GetByCategory", "cat-1").Return(blocking, nil).Once()

	got, items, err := service.DeleteCategory(context.Background(), "cat-1")

	assert.NoError(t, err)
	assert.Equal(t, category, got)
	assert.Equal(t, blocking, items)
	categoryRepo.AssertNotCalled(t, "Delete", mock.Anything)
	categoryRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}

func TestCategoryService_DeleteCategory_Unreferenced(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo, nil)

	category := &models.Category{ID: "cat-1", Name: "Tablet"}
	categoryRepo.On("GetByID", "cat-1").Return(category, nil).Once()
	itemRepo.On("GetByCategory", "cat-1").Return([]models.Item{}, nil).Once()
	categoryRepo.On("Delete", "cat-1").Return(nil).Once()

	got, items, err := service.DeleteCategory(context.Background(), "cat-1")

	assert.NoError(t, err)
	assert.Equal(t, category, got)
	assert.Empty(t, items)
	categoryRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}

func TestCategoryService_CategoryDetail_FirstErrorWins(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo, nil)

	categoryRepo.On("GetByID", "nope").Return(nil, notFoundErr("category with ID %s", "nope")).Once()
	itemRepo.On("GetByCategory", "nope").Return([]models.Item{}, nil).Maybe()

	category, items, err := service.CategoryDetail(context.Background(), "nope")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, category)
	assert.Nil(t, items)
}
