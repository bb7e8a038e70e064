package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers understood by the application bootstrap.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:5000"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	StoreDriver             string        `env:"STORE_DRIVER" envDefault:"postgres"`

	Postgres  Postgres
	Redis     Redis
	Quiz      Quiz
	Security  Security
	CORS      CORS
	Telemetry Telemetry
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host        string `env:"PG_HOST" envDefault:"localhost"`
	Port        int    `env:"PG_PORT" envDefault:"5432"`
	User        string `env:"PG_USER"`
	Password    string `env:"PG_PASSWORD"`
	Database    string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode     string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns    int    `env:"PG_MAX_CONNS" envDefault:"10"`
	AutoMigrate bool   `env:"PG_AUTO_MIGRATE" envDefault:"false"`
}

// DSN renders the key/value connection string understood by pgx.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// Redis holds category cache configuration. An empty address disables caching.
type Redis struct {
	Addr            string        `env:"REDIS_ADDR"`
	DB              int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	CategoryTTL     time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"10m"`
	RefreshInterval time.Duration `env:"CATEGORY_CACHE_REFRESH" envDefault:"5m"`
}

// Quiz groups gameplay defaults.
type Quiz struct {
	DefaultQuestionsPerPlay int `env:"QUIZ_QUESTIONS_PER_PLAY" envDefault:"5"`
}

// Security stores secrets for signing and auth.
type Security struct {
	AdminJWTSecret string        `env:"ADMIN_JWT_SECRET"`
	AdminTokenTTL  time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"24h"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Telemetry toggles request tracing.
type Telemetry struct {
	TracingEnabled bool `env:"OTEL_TRACING_ENABLED" envDefault:"true"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) validate() error {
	switch a.StoreDriver {
	case StoreDriverMemory:
		return nil
	case StoreDriverPostgres:
		if a.Postgres.User == "" {
			return fmt.Errorf("PG_USER must be configured for the postgres store")
		}
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", a.StoreDriver)
	}
}
