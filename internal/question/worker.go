package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type categoryRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// CategoryWarmer keeps the category cache populated so listings rarely miss.
type CategoryWarmer struct {
	cache    categoryRefresher
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewCategoryWarmer(cache categoryRefresher, interval time.Duration, logger zerolog.Logger) *CategoryWarmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CategoryWarmer{
		cache:    cache,
		interval: interval,
		timeout:  4 * time.Second,
		logger:   logger.With().Str("component", "category_warmer").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *CategoryWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CategoryWarmer) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	n, err := w.cache.Refresh(tickCtx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category cache refresh failed")
		return
	}
	w.logger.Debug().Int("categories", n).Msg("category cache refreshed")
}
