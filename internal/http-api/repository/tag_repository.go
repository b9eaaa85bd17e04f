package repository

import (
	"context"
	"fmt"

	"foodgram/internal/http-api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// CountByIDs counts how many of the given ids reference an existing tag.
// Used by the recipe write path to validate tag lists in one query.
func (r *tagRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tags: %w", err)
	}
	return count, nil
}
