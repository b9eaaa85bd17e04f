package service

import (
	"context"
	"testing"

	"foodgram/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// a nil ReferenceCache degrades to a no-op, so these run straight through to
// the repository

func TestTagGetAll_NoCache(t *testing.T) {
	repo := new(MockTagRepository)
	svc := NewTagService(repo, nil)

	tags := []models.Tag{{ID: 1, Name: "Breakfast", Slug: "breakfast"}}
	repo.On("GetAll", mock.Anything).Return(tags, nil)

	got, err := svc.GetAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, tags, got)
	repo.AssertExpectations(t)
}

func TestTagGetByID_NotFound(t *testing.T) {
	repo := new(MockTagRepository)
	svc := NewTagService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	got, err := svc.GetByID(context.Background(), 404)

	assert.Equal(t, ErrTagNotFound, err)
	assert.Nil(t, got)
}

func TestIngredientSearch_PassesPrefix(t *testing.T) {
	repo := new(MockIngredientRepository)
	svc := NewIngredientService(repo, nil)

	ingredients := []models.Ingredient{{ID: 10, Name: "flour", MeasurementUnit: "g"}}
	repo.On("SearchByPrefix", mock.Anything, "flo").Return(ingredients, nil)

	got, err := svc.Search(context.Background(), "flo")

	assert.NoError(t, err)
	assert.Equal(t, ingredients, got)
	repo.AssertExpectations(t)
}

func TestIngredientGetByID_NotFound(t *testing.T) {
	repo := new(MockIngredientRepository)
	svc := NewIngredientService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	got, err := svc.GetByID(context.Background(), 404)

	assert.Equal(t, ErrIngredientNotFound, err)
	assert.Nil(t, got)
}
