// Package main is the entrypoint for the Paperdesk API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/paperdesk/paperdesk/internal/arxiv"
	"github.com/paperdesk/paperdesk/internal/auth"
	"github.com/paperdesk/paperdesk/internal/cache"
	"github.com/paperdesk/paperdesk/internal/config"
	"github.com/paperdesk/paperdesk/internal/handler"
	"github.com/paperdesk/paperdesk/internal/llm"
	"github.com/paperdesk/paperdesk/internal/metrics"
	"github.com/paperdesk/paperdesk/internal/middleware"
	"github.com/paperdesk/paperdesk/internal/repository"
	"github.com/paperdesk/paperdesk/internal/server"
	"github.com/paperdesk/paperdesk/internal/service"
	"github.com/paperdesk/paperdesk/migrations"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := initLogger(cfg)

	if cfg.AutoMigrate {
		if err := migrate(ctx, cfg.DatabaseURL, logger); err != nil {
			return fmt.Errorf("migrate: %s", sanitizeError(err, cfg.DatabaseURL))
		}
	}

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return fmt.Errorf("database unavailable")
	}
	logger.Info("connected to database")

	recorder := metrics.NewPrometheus()

	// The search cache is optional; keep the interfaces nil when disabled.
	var (
		searchCache service.PaperCache
		cacheHealth handler.HealthChecker
		cacheClient *cache.Cache
	)
	if cfg.SearchCacheEnabled() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			repo.Close()
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return fmt.Errorf("redis unavailable")
		}
		searchCache = cache.NewSearchCache(cacheClient, cfg.SearchCacheTTL)
		cacheHealth = cacheClient
		logger.Info("connected to Redis", "search_cache_ttl", cfg.SearchCacheTTL)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	paperIndex := arxiv.NewClient(cfg.ArxivBaseURL, cfg.ArxivCategory, cfg.ArxivTimeout)
	completer := llm.NewClient(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout)

	// Services
	authService := service.NewAuthService(repo, issuer, recorder, logger)
	searchService := service.NewSearchService(service.SearchServiceConfig{
		Users:     repo,
		Queries:   repo,
		Index:     paperIndex,
		Completer: completer,
		Cache:     searchCache,
		Metrics:   recorder,
		Logger:    logger,
	})
	chatService := service.NewChatService(repo, completer, recorder, logger)
	historyService := service.NewHistoryService(repo)

	// Router
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	r := handler.NewRouter(handler.RouterConfig{
		Logger:             logger,
		Verifier:           issuer,
		Metrics:            recorder,
		MetricsHandler:     recorder.Handler(),
		Root:               handler.New(version),
		Health:             handler.NewHealthHandler(repo, cacheHealth, logger),
		Auth:               handler.NewAuthHandler(authService, logger),
		Research:           handler.NewResearchHandler(searchService, historyService, chatService, logger),
		CORS:               cors,
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	srv := server.New(r, server.Config{
		Addr:            fmt.Sprintf(":%d", cfg.AppPort),
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"version", version,
		"arxiv_category", paperIndex.Category(),
		"llm_model", completer.Model(),
	)

	return srv.Run(ctx)
}

// migrate applies pending embedded migrations over a short-lived
// database/sql connection.
func migrate(ctx context.Context, databaseURL string, logger *slog.Logger) error {
	db, err := migrations.Open(databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "count", len(applied), "versions", applied)
	return nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// sanitizeError replaces connection strings in an error message with their
// redacted form.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
