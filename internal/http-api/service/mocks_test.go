package service

import (
	"context"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ids []int64) ([]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockTagRepository mocks the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockIngredientRepository mocks the IngredientRepository interface
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) GetAll(ctx context.Context) ([]models.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) SearchByPrefix(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecipeRepository mocks the RecipeRepository interface
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) GetAll(ctx context.Context, filter repository.RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe, tagIDs []int64, amounts []models.IngredientAmount) error {
	args := m.Called(ctx, recipe, tagIDs, amounts)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *models.Recipe, tagIDs []int64, amounts []models.IngredientAmount) error {
	args := m.Called(ctx, recipe, tagIDs, amounts)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Recipe, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeRepository) AggregateShoppingList(ctx context.Context, userID int64) ([]repository.ShoppingListItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ShoppingListItem), args.Error(1)
}

// MockRelationRepository mocks the RelationRepository interface
type MockRelationRepository struct {
	mock.Mock
}

func (m *MockRelationRepository) Add(ctx context.Context, userID, targetID int64) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockRelationRepository) Remove(ctx context.Context, userID, targetID int64) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockRelationRepository) Exists(ctx context.Context, userID, targetID int64) (bool, error) {
	args := m.Called(ctx, userID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationRepository) TargetIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
