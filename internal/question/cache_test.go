package question

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// unreachableRedis points at a closed port so every command fails fast.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCategoryCacheFallsBackWhenRedisFails(t *testing.T) {
	index := new(mockCategoryIndex)
	index.On("ListCategories", mock.Anything).Return([]Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}, nil)

	cache := NewCategoryCache(index, unreachableRedis(t), time.Minute)

	cats, err := cache.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	c, ok, err := cache.GetCategory(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Art", c.Type)

	_, ok, err = cache.GetCategory(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryCachePropagatesIndexErrors(t *testing.T) {
	index := new(mockCategoryIndex)
	index.On("ListCategories", mock.Anything).Return([]Category(nil), errors.New("db down"))

	cache := NewCategoryCache(index, unreachableRedis(t), 0)

	_, err := cache.ListCategories(context.Background())
	assert.Error(t, err)
	_, err = cache.Refresh(context.Background())
	assert.Error(t, err)
}

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) Refresh(context.Context) (int, error) {
	r.calls.Add(1)
	return 6, nil
}

func TestCategoryWarmerRefreshesUntilCanceled(t *testing.T) {
	refresher := &countingRefresher{}
	warmer := NewCategoryWarmer(refresher, 5*time.Millisecond, zerolog.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	err := warmer.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, refresher.calls.Load(), int32(2))
}
