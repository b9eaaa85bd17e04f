package service

import (
	"context"
	"errors"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"gorm.io/gorm"
)

// SubscribedAuthor is one followed author plus an embedded sample of their
// recipes for the subscriptions listing.
type SubscribedAuthor struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

type UserService interface {
	Profile(ctx context.Context, userID int64) (*models.User, error)
	Subscriptions(ctx context.Context, userID int64, page, pageSize, recipesLimit int) ([]SubscribedAuthor, int64, error)
}

type userService struct {
	userRepo         repository.UserRepository
	recipeRepo       repository.RecipeRepository
	subscriptionRepo repository.RelationRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
	subscriptionRepo repository.RelationRepository,
) UserService {
	return &userService{
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Subscriptions pages through the authors the user follows, embedding up to
// recipesLimit recipes per author (0 means no cap).
func (s *userService) Subscriptions(ctx context.Context, userID int64, page, pageSize, recipesLimit int) ([]SubscribedAuthor, int64, error) {
	authorIDs, err := s.subscriptionRepo.TargetIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(authorIDs))

	start := (page - 1) * pageSize
	if start >= len(authorIDs) {
		return []SubscribedAuthor{}, total, nil
	}
	end := start + pageSize
	if end > len(authorIDs) {
		end = len(authorIDs)
	}
	pageIDs := authorIDs[start:end]

	authors, err := s.userRepo.FindByIDs(pageIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]models.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	out := make([]SubscribedAuthor, 0, len(pageIDs))
	for _, id := range pageIDs {
		author, ok := byID[id]
		if !ok {
			continue
		}
		recipes, err := s.recipeRepo.ListByAuthor(ctx, id, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		count, err := s.recipeRepo.CountByAuthor(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, SubscribedAuthor{
			Author:       author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}

	return out, total, nil
}
