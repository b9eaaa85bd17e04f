package repository

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/http-api/models"

	"gorm.io/gorm"
)

type IngredientRepository interface {
	GetAll(ctx context.Context) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*models.Ingredient, error)
	SearchByPrefix(ctx context.Context, prefix string) ([]models.Ingredient, error)
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetAll(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// SearchByPrefix performs a case-insensitive prefix match on ingredient name.
func (r *ingredientRepository) SearchByPrefix(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return r.GetAll(ctx)
	}

	var ingredients []models.Ingredient
	// escape the LIKE metacharacters so "50%" searches literally
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", escaped+"%").
		Order("name").
		Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *ingredientRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count ingredients: %w", err)
	}
	return count, nil
}
