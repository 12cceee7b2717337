// file: internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Logging  LoggingConfig
	Features FeatureConfig
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	TemplateDir     string
	StaticDir       string
}

// BackendConfig holds the remote insidelab API configuration.
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     int
}

// CacheConfig holds cache configuration.
type CacheConfig struct {
	Provider      string
	TTL           time.Duration
	MaxKeys       int
	RedisURL      string
	RedisDB       int
	RedisPassword string
}

// AuthConfig holds auth and OAuth configuration.
type AuthConfig struct {
	TokenFile          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string // "json", "console"
}

// FeatureConfig holds feature flags.
type FeatureConfig struct {
	// DegradedMode allows services to substitute fixed fallback data
	// when the backend is unreachable instead of surfacing the error.
	DegradedMode bool
	// OfflineSearch evaluates searches client-side over the reference
	// corpus instead of calling the backend search endpoint.
	OfflineSearch bool
}

// Load reads configuration from the environment, consulting .env files
// outside production.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load()
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     env,
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			GracefulTimeout: getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
			TemplateDir:     getEnv("TEMPLATE_DIR", "templates"),
			StaticDir:       getEnv("STATIC_DIR", "static"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "https://insidelab.up.railway.app/api/v1"),
			RequestTimeout: getDurationEnv("BACKEND_REQUEST_TIMEOUT", 15*time.Second),
			MaxRetries:     getIntEnv("BACKEND_MAX_RETRIES", 2),
		},
		Cache: CacheConfig{
			Provider:      getEnv("CACHE_PROVIDER", "memory"),
			TTL:           getDurationEnv("CACHE_TTL", 5*time.Minute),
			MaxKeys:       getIntEnv("CACHE_MAX_KEYS", 10000),
			RedisURL:      getEnv("REDIS_URL", ""),
			RedisDB:       getIntEnv("REDIS_DB", 0),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			TokenFile:          getEnv("AUTH_TOKEN_FILE", ".insidelab/auth_token"),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", defaultLogLevel(env)),
			Format: getEnv("LOG_FORMAT", defaultLogFormat(env)),
		},
		Features: FeatureConfig{
			DegradedMode:  getBoolEnv("FEATURE_DEGRADED_MODE", true),
			OfflineSearch: getBoolEnv("FEATURE_OFFLINE_SEARCH", false),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("invalid BACKEND_BASE_URL %q: %w", c.Backend.BaseURL, err)
	}
	if c.Cache.Provider == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("CACHE_PROVIDER is redis but REDIS_URL is empty")
	}
	if c.Backend.MaxRetries < 0 {
		return fmt.Errorf("BACKEND_MAX_RETRIES must not be negative")
	}
	return nil
}

// IsProduction reports whether the environment is production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func defaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}

func defaultLogFormat(env string) string {
	if env == "production" {
		return "json"
	}
	return "console"
}

// ===============================
// ENV HELPERS
// ===============================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
