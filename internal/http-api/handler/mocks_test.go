package handler

import (
	"context"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// actAs sets the authenticated user the way the auth middleware would.
func actAs(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, password, email, firstName, lastName string) (*models.User, error) {
	args := m.Called(username, password, email, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(username, password string) (string, string, *models.User, error) {
	args := m.Called(username, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) RevokeToken(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

// MockRecipeService mocks the RecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) List(ctx context.Context, filter repository.RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, authorID int64, input service.RecipeInput) (*models.Recipe, error) {
	args := m.Called(ctx, authorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, actorID, recipeID int64, input service.RecipeInput) (*models.Recipe, error) {
	args := m.Called(ctx, actorID, recipeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, actorID, recipeID int64) error {
	args := m.Called(ctx, actorID, recipeID)
	return args.Error(0)
}

// MockRelationService mocks the RelationService interface
type MockRelationService struct {
	mock.Mock
}

func (m *MockRelationService) AddFavorite(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRelationService) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationService) AddToShoppingCart(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRelationService) RemoveFromShoppingCart(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationService) Subscribe(ctx context.Context, userID, authorID int64) (*models.User, error) {
	args := m.Called(ctx, userID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRelationService) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *MockRelationService) FavoriteRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRelationService) CartRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRelationService) SubscribedAuthorIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRelationService) IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

// MockShoppingListService mocks the ShoppingListService interface
type MockShoppingListService struct {
	mock.Mock
}

func (m *MockShoppingListService) Download(ctx context.Context, userID int64) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Subscriptions(ctx context.Context, userID int64, page, pageSize, recipesLimit int) ([]service.SubscribedAuthor, int64, error) {
	args := m.Called(ctx, userID, page, pageSize, recipesLimit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]service.SubscribedAuthor), args.Get(1).(int64), args.Error(2)
}
