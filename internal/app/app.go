package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/auth"
	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	sqlDB *sql.DB
	redis *redis.Client
	http  *http.Server

	warmer    *question.CategoryWarmer
	bgCancels []context.CancelFunc
}

// New bootstraps the store, the optional Redis category cache and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.StoreDriver).Msg("starting application bootstrap")

	a := &Application{
		cfg:       cfg,
		logger:    logger,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}

	var (
		questions  question.QuestionStore
		categories question.CategoryIndex
		deps       []server.Dependency
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.NewStore(memory.SeedCategories)
		questions, categories = store, store
		logger.Warn().Msg("using in-memory store; data is lost on restart")
	case config.StoreDriverPostgres:
		pool, sqlDB, err := db.Open(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool, a.sqlDB = pool, sqlDB
		if cfg.Postgres.AutoMigrate {
			if err := migrations.Up(ctx, sqlDB); err != nil {
				a.close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info().Msg("database migrations applied")
		}
		questions = repository.NewQuestionRepository(sqlDB)
		categories = repository.NewCategoryRepository(sqlDB)
		deps = append(deps, server.Dependency{Name: "postgres", Ping: pool.Ping})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache := question.NewCategoryCache(categories, a.redis, cfg.Redis.CategoryTTL)
		categories = cache
		if cfg.Redis.RefreshInterval > 0 {
			a.warmer = question.NewCategoryWarmer(cache, cfg.Redis.RefreshInterval, logger)
		}
		deps = append(deps, server.Dependency{Name: "redis", Ping: func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		}})
	} else {
		logger.Info().Msg("REDIS_ADDR not set; category cache disabled")
	}

	var adminGuard func(http.Handler) http.Handler
	if cfg.Security.AdminJWTSecret != "" {
		tokens := jwt.NewManager(jwt.TokenConfig{
			Secret: []byte(cfg.Security.AdminJWTSecret),
			TTL:    cfg.Security.AdminTokenTTL,
			Issuer: cfg.Name,
		})
		adminGuard = auth.RequireAdmin(tokens, logger)
	} else {
		logger.Warn().Msg("ADMIN_JWT_SECRET not configured; question create and delete are unauthenticated")
	}

	questionSvc := question.NewService(questions, categories, question.ServiceOptions{})
	questionHandler := question.NewHTTPHandler(questionSvc, logger, question.HandlerOptions{
		DefaultQuestionsPerPlay: cfg.Quiz.DefaultQuestionsPerPlay,
		Upgrader:                ws.NewUpgrader(cfg.CORS.AllowedOrigins),
	})

	a.http = server.NewHTTPServer(cfg, logger, questionHandler, adminGuard, deps...)
	return a, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}
	a.close()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

// Handler exposes the root HTTP handler, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.http.Handler
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.warmer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("category cache warmer stopped")
			}
		}()
	}
}

func (a *Application) close() {
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			a.logger.Error().Err(err).Msg("sql handle close error")
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
