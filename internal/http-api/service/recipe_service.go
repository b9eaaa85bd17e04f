package service

import (
	"context"
	"errors"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeAuthor     = errors.New("only the author may change this recipe")
	ErrInvalidTag          = errors.New("unknown or missing tag")
	ErrInvalidIngredient   = errors.New("unknown or missing ingredient")
	ErrDuplicateIngredient = errors.New("duplicate ingredient in recipe")
)

// IngredientInput is one (ingredient id, amount) pair of a recipe write.
type IngredientInput struct {
	ID     int64
	Amount int
}

// RecipeInput carries everything a recipe create or update accepts.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []int64
	Ingredients []IngredientInput
}

type RecipeService interface {
	List(ctx context.Context, filter repository.RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error)
	Get(ctx context.Context, id int64) (*models.Recipe, error)
	Create(ctx context.Context, authorID int64, input RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, actorID, recipeID int64, input RecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, actorID, recipeID int64) error
}

type recipeService struct {
	repo           repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
}

func NewRecipeService(
	repo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
) RecipeService {
	return &recipeService{
		repo:           repo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (s *recipeService) List(ctx context.Context, filter repository.RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error) {
	return s.repo.GetAll(ctx, filter, page, pageSize)
}

func (s *recipeService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Create(ctx context.Context, authorID int64, input RecipeInput) (*models.Recipe, error) {
	tagIDs, amounts, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Image:       input.Image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}
	if err := s.repo.Create(ctx, recipe, tagIDs, amounts); err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

func (s *recipeService) Update(ctx context.Context, actorID, recipeID int64, input RecipeInput) (*models.Recipe, error) {
	existing, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != actorID {
		return nil, ErrNotRecipeAuthor
	}

	tagIDs, amounts, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        input.Name,
		Image:       input.Image,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		PubDate:     existing.PubDate,
	}
	if err := s.repo.Update(ctx, recipe, tagIDs, amounts); err != nil {
		return nil, err
	}

	return s.Get(ctx, recipeID)
}

func (s *recipeService) Delete(ctx context.Context, actorID, recipeID int64) error {
	existing, err := s.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing.AuthorID != actorID {
		return ErrNotRecipeAuthor
	}
	return s.repo.Delete(ctx, recipeID)
}

// validateInput checks the tag and ingredient lists against the reference
// tables and returns them in persistable form.
func (s *recipeService) validateInput(ctx context.Context, input RecipeInput) ([]int64, []models.IngredientAmount, error) {
	for _, id := range input.TagIDs {
		if id <= 0 {
			return nil, nil, ErrInvalidTag
		}
	}
	tagIDs := dedupeIDs(input.TagIDs)
	if len(tagIDs) == 0 {
		return nil, nil, ErrInvalidTag
	}
	count, err := s.tagRepo.CountByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if count != int64(len(tagIDs)) {
		return nil, nil, ErrInvalidTag
	}

	if len(input.Ingredients) == 0 {
		return nil, nil, ErrInvalidIngredient
	}
	seen := make(map[int64]bool, len(input.Ingredients))
	ingredientIDs := make([]int64, 0, len(input.Ingredients))
	amounts := make([]models.IngredientAmount, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if ing.ID <= 0 || ing.Amount < 1 {
			return nil, nil, ErrInvalidIngredient
		}
		if seen[ing.ID] {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[ing.ID] = true
		ingredientIDs = append(ingredientIDs, ing.ID)
		amounts = append(amounts, models.IngredientAmount{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	count, err = s.ingredientRepo.CountByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if count != int64(len(ingredientIDs)) {
		return nil, nil, ErrInvalidIngredient
	}

	return tagIDs, amounts, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
