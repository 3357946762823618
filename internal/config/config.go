// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// minProductionJWTSecretLen is the shortest HS256 secret accepted when
// APP_ENV=production.
const minProductionJWTSecretLen = 32

// ErrWeakJWTSecret is returned by Load when a production JWT secret is too short.
var ErrWeakJWTSecret = errors.New("JWT_SECRET must be at least 32 bytes in production")

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Cache (Redis). Empty disables the search result cache.
	RedisURL       string        `env:"REDIS_URL" envDefault:""`
	SearchCacheTTL time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"10m"`

	// Bearer token signing secret
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// Bibliographic search (arXiv)
	ArxivBaseURL  string        `env:"ARXIV_BASE_URL" envDefault:"http://export.arxiv.org/api/query"`
	ArxivCategory string        `env:"ARXIV_CATEGORY" envDefault:"cs.*"`
	ArxivTimeout  time.Duration `env:"ARXIV_TIMEOUT" envDefault:"15s"`

	// Language model provider (OpenAI-compatible chat completions)
	LLMBaseURL string        `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel   string        `env:"LLM_MODEL" envDefault:"anthropic/claude-3-haiku"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. The write timeout must cover an arXiv call followed by
	// the summary calls.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"240s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com").
	// "*" allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SearchCacheEnabled reports whether a Redis URL was configured.
func (c *Config) SearchCacheEnabled() bool {
	return c.RedisURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.IsProduction() && len(c.JWTSecret) < minProductionJWTSecretLen {
		return ErrWeakJWTSecret
	}
	return nil
}
