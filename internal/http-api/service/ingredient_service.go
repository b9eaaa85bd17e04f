package service

import (
	"context"
	"errors"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type IngredientService interface {
	Search(ctx context.Context, namePrefix string) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*models.Ingredient, error)
}

type ingredientService struct {
	repo  repository.IngredientRepository
	cache *repository.ReferenceCache
}

func NewIngredientService(repo repository.IngredientRepository, cache *repository.ReferenceCache) IngredientService {
	return &ingredientService{repo: repo, cache: cache}
}

func (s *ingredientService) Search(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	if ingredients, ok := s.cache.GetIngredients(ctx, namePrefix); ok {
		return ingredients, nil
	}
	ingredients, err := s.repo.SearchByPrefix(ctx, namePrefix)
	if err != nil {
		return nil, err
	}
	s.cache.SetIngredients(ctx, namePrefix, ingredients)
	return ingredients, nil
}

func (s *ingredientService) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	ingredient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}
