package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/paperdesk/paperdesk/internal/metrics"
	"github.com/paperdesk/paperdesk/internal/middleware"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	Logger   *slog.Logger
	Verifier middleware.TokenVerifier
	Metrics  metrics.Recorder
	// MetricsHandler serves /metrics. Omitted when nil.
	MetricsHandler http.Handler

	Root     *Handler
	Health   *HealthHandler
	Auth     *AuthHandler
	Research *ResearchHandler

	CORS               middleware.CORSConfig
	IsDevelopment      bool
	MaxRequestBodySize int64
}

// NewRouter builds the chi router with global middleware, public routes and
// the bearer-protected /api routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.MaxRequestBodySize <= 0 {
		cfg.MaxRequestBodySize = 1 << 20
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Public endpoints
	r.Get("/", cfg.Root.Hello)
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", cfg.Auth.Register)
		r.Post("/auth/login", cfg.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(middleware.AuthConfig{
				Logger:   cfg.Logger,
				Verifier: cfg.Verifier,
			}))

			r.Put("/user/api-key", cfg.Auth.SetAPIKey)
			r.Post("/search", cfg.Research.Search)
			r.Get("/queries", cfg.Research.Queries)
			r.Post("/chat", cfg.Research.Chat)
		})
	})

	r.NotFound(cfg.Root.NotFound)
	r.MethodNotAllowed(cfg.Root.MethodNotAllowed)

	return r
}
