package service

import (
	"context"
	"errors"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

type TagService interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
}

type tagService struct {
	repo  repository.TagRepository
	cache *repository.ReferenceCache
}

func NewTagService(repo repository.TagRepository, cache *repository.ReferenceCache) TagService {
	return &tagService{repo: repo, cache: cache}
}

func (s *tagService) GetAll(ctx context.Context) ([]models.Tag, error) {
	if tags, ok := s.cache.GetTags(ctx); ok {
		return tags, nil
	}
	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetTags(ctx, tags)
	return tags, nil
}

func (s *tagService) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
