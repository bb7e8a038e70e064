package question

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL  = 10 * time.Minute
	categoryCacheKey = "trivia:categories"
)

// CategoryCache is a Redis-backed CategoryIndex that serves the category list
// from cache and falls back to the wrapped index on a miss or cache error.
type CategoryCache struct {
	next   CategoryIndex
	client redis.Cmdable
	ttl    time.Duration
}

var _ CategoryIndex = (*CategoryCache)(nil)

func NewCategoryCache(next CategoryIndex, client redis.Cmdable, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CategoryCache{next: next, client: client, ttl: ttl}
}

func (c *CategoryCache) ListCategories(ctx context.Context) ([]Category, error) {
	if cached, err := c.get(ctx); err == nil && cached != nil {
		return cached, nil
	}
	cats, err := c.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	// best effort
	_ = c.set(ctx, cats)
	return cats, nil
}

func (c *CategoryCache) GetCategory(ctx context.Context, id int64) (Category, bool, error) {
	cats, err := c.ListCategories(ctx)
	if err != nil {
		return Category{}, false, err
	}
	for _, cat := range cats {
		if cat.ID == id {
			return cat, true, nil
		}
	}
	return Category{}, false, nil
}

// Refresh reloads the category list from the wrapped index into Redis.
func (c *CategoryCache) Refresh(ctx context.Context) (int, error) {
	cats, err := c.next.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	return len(cats), c.set(ctx, cats)
}

func (c *CategoryCache) get(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var cats []Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *CategoryCache) set(ctx context.Context, cats []Category) error {
	data, err := json.Marshal(cats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoryCacheKey, data, c.ttl).Err()
}
