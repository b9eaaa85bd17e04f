package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodgram/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// ReferenceCache keeps the tag and ingredient reference data in Redis.
// Both tables are immutable through the API, so cache entries only age out.
// A nil cache (no Redis configured) degrades to a no-op.
type ReferenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReferenceCache(redisURL, password string, ttl time.Duration) (*ReferenceCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ReferenceCache{client: rdb, ttl: ttl}, nil
}

func (c *ReferenceCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *ReferenceCache) GetTags(ctx context.Context) ([]models.Tag, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, "reference:tags").Bytes()
	if err != nil {
		return nil, false
	}
	var tags []models.Tag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, false
	}
	return tags, true
}

func (c *ReferenceCache) SetTags(ctx context.Context, tags []models.Tag) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return
	}
	c.client.Set(ctx, "reference:tags", raw, c.ttl)
}

func (c *ReferenceCache) GetIngredients(ctx context.Context, prefix string) ([]models.Ingredient, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, ingredientKey(prefix)).Bytes()
	if err != nil {
		return nil, false
	}
	var ingredients []models.Ingredient
	if err := json.Unmarshal(raw, &ingredients); err != nil {
		return nil, false
	}
	return ingredients, true
}

func (c *ReferenceCache) SetIngredients(ctx context.Context, prefix string, ingredients []models.Ingredient) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(ingredients)
	if err != nil {
		return
	}
	c.client.Set(ctx, ingredientKey(prefix), raw, c.ttl)
}

func ingredientKey(prefix string) string {
	return fmt.Sprintf("reference:ingredients:%s", prefix)
}
