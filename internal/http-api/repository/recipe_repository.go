package repository

import (
	"context"
	"fmt"

	"foodgram/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter holds the optional list filters. Nil fields are not applied.
type RecipeFilter struct {
	AuthorID    *int64
	TagSlugs    []string
	FavoritedBy *int64
	InCartOf    *int64
}

// ShoppingListItem is one grouped line of the aggregated shopping list.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int64  `json:"total"`
}

type RecipeRepository interface {
	GetAll(ctx context.Context, filter RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe, tagIDs []int64, amounts []models.IngredientAmount) error
	Update(ctx context.Context, recipe *models.Recipe, tagIDs []int64, amounts []models.IngredientAmount) error
	Delete(ctx context.Context, id int64) error
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	AggregateShoppingList(ctx context.Context, userID int64) ([]ShoppingListItem, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// filtered builds the base query with every requested filter applied.
// Tag/favorite/cart filters go through IN subqueries so a recipe carrying
// several matching tags still appears once.
func (r *recipeRepository) filtered(ctx context.Context, filter RecipeFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where("recipes.id IN (?)", r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs))
	}
	if filter.FavoritedBy != nil {
		q = q.Where("recipes.id IN (?)", r.db.Table("favorites").
			Select("recipe_id").
			Where("user_id = ?", *filter.FavoritedBy))
	}
	if filter.InCartOf != nil {
		q = q.Where("recipes.id IN (?)", r.db.Table("shopping_carts").
			Select("recipe_id").
			Where("user_id = ?", *filter.InCartOf))
	}
	return q
}

func (r *recipeRepository) GetAll(ctx context.Context, filter RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error) {
	var list []models.Recipe
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.filtered(ctx, filter).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("pub_date desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return list, total, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create persists the recipe row, its tag associations and its ingredient
// amounts in one transaction.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, tagIDs []int64, amounts []models.IngredientAmount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return r.replaceAssociations(tx, recipe, tagIDs, amounts)
	})
}

// Update saves the recipe fields and replaces the tag and ingredient sets
// wholesale. Previous associations never survive an update.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, tagIDs []int64, amounts []models.IngredientAmount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return r.replaceAssociations(tx, recipe, tagIDs, amounts)
	})
}

func (r *recipeRepository) replaceAssociations(tx *gorm.DB, recipe *models.Recipe, tagIDs []int64, amounts []models.IngredientAmount) error {
	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.Tag{ID: id})
	}
	if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}

	// delete-then-insert, not merge
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientAmount{}).Error; err != nil {
		return fmt.Errorf("clear ingredient amounts: %w", err)
	}
	for i := range amounts {
		amounts[i].ID = 0
		amounts[i].RecipeID = recipe.ID
	}
	if len(amounts) > 0 {
		if err := tx.Omit(clause.Associations).Create(&amounts).Error; err != nil {
			return fmt.Errorf("insert ingredient amounts: %w", err)
		}
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	// ingredient amounts, favorites and cart rows go with the recipe via
	// the storage-layer cascade rules
	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(&models.Recipe{ID: id}).Error; err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// ListByAuthor returns the author's newest recipes, capped at limit when
// limit > 0.
func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Recipe, error) {
	var list []models.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list recipes by author: %w", err)
	}
	return list, nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recipes by author: %w", err)
	}
	return count, nil
}

// AggregateShoppingList flattens every (ingredient, amount) pair across the
// recipes in the user's cart and sums amounts per (name, unit) group. Sorted
// by name for a stable document; an empty cart yields an empty list.
func (r *recipeRepository) AggregateShoppingList(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	if err := r.db.WithContext(ctx).
		Table("ingredient_amounts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_amounts.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_amounts.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	return items, nil
}
