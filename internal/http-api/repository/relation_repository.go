package repository

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicateRelation = errors.New("relation already exists")
	ErrRelationNotFound  = errors.New("relation not found")
)

// RelationRepository guards one unique (user, target) pair table.
// Favorite, ShoppingCart and Subscription all reduce to this shape.
type RelationRepository interface {
	Add(ctx context.Context, userID, targetID int64) error
	Remove(ctx context.Context, userID, targetID int64) error
	Exists(ctx context.Context, userID, targetID int64) (bool, error)
	TargetIDs(ctx context.Context, userID int64) ([]int64, error)
}

type relationRepository[T any] struct {
	db        *gorm.DB
	targetCol string
	newRow    func(userID, targetID int64) T
}

func NewFavoriteRepository(db *gorm.DB) RelationRepository {
	return &relationRepository[models.Favorite]{
		db:        db,
		targetCol: "recipe_id",
		newRow: func(userID, recipeID int64) models.Favorite {
			return models.Favorite{UserID: userID, RecipeID: recipeID}
		},
	}
}

func NewShoppingCartRepository(db *gorm.DB) RelationRepository {
	return &relationRepository[models.ShoppingCart]{
		db:        db,
		targetCol: "recipe_id",
		newRow: func(userID, recipeID int64) models.ShoppingCart {
			return models.ShoppingCart{UserID: userID, RecipeID: recipeID}
		},
	}
}

func NewSubscriptionRepository(db *gorm.DB) RelationRepository {
	return &relationRepository[models.Subscription]{
		db:        db,
		targetCol: "author_id",
		newRow: func(userID, authorID int64) models.Subscription {
			return models.Subscription{UserID: userID, AuthorID: authorID}
		},
	}
}

// Add inserts the (user, target) pair. The existence check and the insert run
// in one transaction; a concurrent insert that slips past the check trips the
// unique constraint and is reported as ErrDuplicateRelation all the same.
func (r *relationRepository[T]) Add(ctx context.Context, userID, targetID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		var count int64
		if err := tx.Model(&zero).
			Where("user_id = ? AND "+r.targetCol+" = ?", userID, targetID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check relation: %w", err)
		}
		if count > 0 {
			return ErrDuplicateRelation
		}

		row := r.newRow(userID, targetID)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateRelation
			}
			return fmt.Errorf("add relation: %w", err)
		}
		return nil
	})
}

func (r *relationRepository[T]) Remove(ctx context.Context, userID, targetID int64) error {
	var zero T
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND "+r.targetCol+" = ?", userID, targetID).
		Delete(&zero)

	if result.Error != nil {
		return fmt.Errorf("remove relation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRelationNotFound
	}
	return nil
}

func (r *relationRepository[T]) Exists(ctx context.Context, userID, targetID int64) (bool, error) {
	var zero T
	var count int64
	if err := r.db.WithContext(ctx).Model(&zero).
		Where("user_id = ? AND "+r.targetCol+" = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// TargetIDs returns every target id the user has marked, oldest first.
func (r *relationRepository[T]) TargetIDs(ctx context.Context, userID int64) ([]int64, error) {
	var zero T
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&zero).
		Where("user_id = ?", userID).
		Order("added_at").
		Pluck(r.targetCol, &ids).Error; err != nil {
		return nil, fmt.Errorf("list relation targets: %w", err)
	}
	return ids, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
