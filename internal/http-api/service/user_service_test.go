package service

import (
	"context"
	"testing"

	"foodgram/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestProfile_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	subscriptionRepo := new(MockRelationRepository)
	svc := NewUserService(userRepo, recipeRepo, subscriptionRepo)

	userRepo.On("FindByID", int64(404)).Return(nil, gorm.ErrRecordNotFound)

	user, err := svc.Profile(context.Background(), 404)

	assert.Equal(t, ErrUserNotFound, err)
	assert.Nil(t, user)
}

func TestSubscriptions_PagesAndEmbedsRecipes(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	subscriptionRepo := new(MockRelationRepository)
	svc := NewUserService(userRepo, recipeRepo, subscriptionRepo)

	subscriptionRepo.On("TargetIDs", mock.Anything, int64(7)).Return([]int64{8, 9, 10}, nil)
	userRepo.On("FindByIDs", []int64{8, 9}).Return([]models.User{
		{ID: 8, Username: "alice"},
		{ID: 9, Username: "bob"},
	}, nil)
	recipeRepo.On("ListByAuthor", mock.Anything, int64(8), 3).Return([]models.Recipe{{ID: 1}, {ID: 2}}, nil)
	recipeRepo.On("CountByAuthor", mock.Anything, int64(8)).Return(int64(5), nil)
	recipeRepo.On("ListByAuthor", mock.Anything, int64(9), 3).Return([]models.Recipe{}, nil)
	recipeRepo.On("CountByAuthor", mock.Anything, int64(9)).Return(int64(0), nil)

	authors, total, err := svc.Subscriptions(context.Background(), 7, 1, 2, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, authors, 2)
	assert.Equal(t, "alice", authors[0].Author.Username)
	assert.Len(t, authors[0].Recipes, 2)
	assert.Equal(t, int64(5), authors[0].RecipesCount)
	subscriptionRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	recipeRepo.AssertExpectations(t)
}

func TestSubscriptions_PageBeyondEnd(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	subscriptionRepo := new(MockRelationRepository)
	svc := NewUserService(userRepo, recipeRepo, subscriptionRepo)

	subscriptionRepo.On("TargetIDs", mock.Anything, int64(7)).Return([]int64{8}, nil)

	authors, total, err := svc.Subscriptions(context.Background(), 7, 5, 20, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, authors)
	userRepo.AssertNotCalled(t, "FindByIDs")
}

func TestSubscriptions_NoneFollowed(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	subscriptionRepo := new(MockRelationRepository)
	svc := NewUserService(userRepo, recipeRepo, subscriptionRepo)

	subscriptionRepo.On("TargetIDs", mock.Anything, int64(7)).Return([]int64{}, nil)

	authors, total, err := svc.Subscriptions(context.Background(), 7, 1, 20, 0)

	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, authors)
}
