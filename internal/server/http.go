package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const pingTimeout = 3 * time.Second

// Dependency is an upstream checked by /v1/ping.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewHTTPServer wires base routes (health, metrics, ping) and the trivia API.
// admin guards the mutating question routes and may be nil.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, questions *question.HTTPHandler, admin func(http.Handler) http.Handler, deps ...Dependency) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, logger, questions, admin, deps...),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the root handler with the full middleware chain.
func NewHandler(cfg *config.App, logger zerolog.Logger, questions *question.HTTPHandler, admin func(http.Handler) http.Handler, deps ...Dependency) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		for _, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				logging.FromContext(ctx).Error().Err(err).Str("dependency", dep.Name).Msg("dependency ping failed")
				httperrors.RespondFailure(w, http.StatusBadGateway, "upstream error")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if questions != nil {
		questions.Register(mux, admin)
	}

	var handler http.Handler = withMetrics(mux)
	handler = withRequestLogging(logger, handler)
	handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}).Handler(handler)

	if cfg.Telemetry.TracingEnabled {
		handler = otelhttp.NewHandler(handler, cfg.Name)
	}
	return handler
}
