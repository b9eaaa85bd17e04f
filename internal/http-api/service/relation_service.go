package service

import (
	"context"
	"errors"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"gorm.io/gorm"
)

// Re-exported so handlers can match toggle outcomes without importing the
// repository package.
var (
	ErrDuplicateRelation = repository.ErrDuplicateRelation
	ErrRelationNotFound  = repository.ErrRelationNotFound
	ErrSelfSubscription  = errors.New("subscribing to yourself is not allowed")
	ErrUserNotFound      = errors.New("user not found")
)

// RelationService drives the three structurally identical toggles: favorite,
// shopping cart and subscription. Favorite and cart hand back the compact
// recipe; subscribe hands back the author profile.
type RelationService interface {
	AddFavorite(ctx context.Context, userID, recipeID int64) (*models.Recipe, error)
	RemoveFavorite(ctx context.Context, userID, recipeID int64) error
	AddToShoppingCart(ctx context.Context, userID, recipeID int64) (*models.Recipe, error)
	RemoveFromShoppingCart(ctx context.Context, userID, recipeID int64) error
	Subscribe(ctx context.Context, userID, authorID int64) (*models.User, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error

	// viewer context for response decoration
	FavoriteRecipeIDs(ctx context.Context, userID int64) ([]int64, error)
	CartRecipeIDs(ctx context.Context, userID int64) ([]int64, error)
	SubscribedAuthorIDs(ctx context.Context, userID int64) ([]int64, error)
	IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error)
}

type relationService struct {
	favorites     repository.RelationRepository
	cart          repository.RelationRepository
	subscriptions repository.RelationRepository
	recipeRepo    repository.RecipeRepository
	userRepo      repository.UserRepository
}

func NewRelationService(
	favorites repository.RelationRepository,
	cart repository.RelationRepository,
	subscriptions repository.RelationRepository,
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
) RelationService {
	return &relationService{
		favorites:     favorites,
		cart:          cart,
		subscriptions: subscriptions,
		recipeRepo:    recipeRepo,
		userRepo:      userRepo,
	}
}

// addRecipeRelation is the shared add path for favorite and cart: confirm the
// target exists, then insert the pair.
func (s *relationService) addRecipeRelation(ctx context.Context, rel repository.RelationRepository, userID, recipeID int64) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if err := rel.Add(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *relationService) AddFavorite(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	return s.addRecipeRelation(ctx, s.favorites, userID, recipeID)
}

func (s *relationService) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.favorites.Remove(ctx, userID, recipeID)
}

func (s *relationService) AddToShoppingCart(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	return s.addRecipeRelation(ctx, s.cart, userID, recipeID)
}

func (s *relationService) RemoveFromShoppingCart(ctx context.Context, userID, recipeID int64) error {
	return s.cart.Remove(ctx, userID, recipeID)
}

// Subscribe rejects self-subscription before any existence check.
func (s *relationService) Subscribe(ctx context.Context, userID, authorID int64) (*models.User, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.subscriptions.Add(ctx, userID, authorID); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *relationService) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if userID == authorID {
		return ErrSelfSubscription
	}
	if _, err := s.userRepo.FindByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.subscriptions.Remove(ctx, userID, authorID)
}

func (s *relationService) FavoriteRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.favorites.TargetIDs(ctx, userID)
}

func (s *relationService) CartRecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.cart.TargetIDs(ctx, userID)
}

func (s *relationService) SubscribedAuthorIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.subscriptions.TargetIDs(ctx, userID)
}

// IsSubscribed answers the single-pair check, cheaper than listing every
// followed author when only one profile is being rendered.
func (s *relationService) IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error) {
	return s.subscriptions.Exists(ctx, userID, authorID)
}
