package service

import (
	"context"

	"foodgram/internal/http-api/pdf"
	"foodgram/internal/http-api/repository"
)

// ShoppingListService turns the aggregated cart contents into a document.
type ShoppingListService interface {
	Download(ctx context.Context, userID int64) ([]byte, error)
}

type shoppingListService struct {
	recipeRepo repository.RecipeRepository
}

func NewShoppingListService(recipeRepo repository.RecipeRepository) ShoppingListService {
	return &shoppingListService{recipeRepo: recipeRepo}
}

// Download renders the aggregated list as a PDF. An empty cart renders an
// empty document rather than failing.
func (s *shoppingListService) Download(ctx context.Context, userID int64) ([]byte, error) {
	items, err := s.recipeRepo.AggregateShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pdf.ShoppingList(items)
}
