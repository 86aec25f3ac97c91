package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogInline   = "inline"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
)

type Config struct {
	Port           int
	RequestTimeout time.Duration

	CatalogSource string
	CatalogPath   string
	SeedCatalog   bool

	DatabaseURL string
	DBPoolSize  int

	// Empty RedisURL disables the recommendation cache.
	RedisURL string
	CacheTTL time.Duration

	TopN    int
	MaxTopN int

	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration

	LogLevel  string
	LogFormat string
}

// Load configuration from env. A .env file in the working directory is read
// first when present; real environment variables take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvInt("PORT", 8080),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		CatalogSource:      strings.ToLower(getEnv("CATALOG_SOURCE", CatalogInline)),
		CatalogPath:        getEnv("CATALOG_PATH", "places.json"),
		SeedCatalog:        getEnvBool("SEED_CATALOG", true),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBPoolSize:         getEnvInt("DB_POOL_SIZE", 10),
		RedisURL:           getEnv("REDIS_URL", ""),
		CacheTTL:           getEnvDuration("CACHE_TTL", 10*time.Minute),
		TopN:               getEnvInt("TOP_N", 3),
		MaxTopN:            getEnvInt("MAX_TOP_N", 10),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRequests:  getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:    getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.CatalogSource {
	case CatalogInline:
	case CatalogFile:
		if c.CatalogPath == "" {
			errs = append(errs, errors.New("CATALOG_PATH is required for the file catalog"))
		}
	case CatalogPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres catalog"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.TopN < 1 {
		errs = append(errs, fmt.Errorf("TOP_N must be at least 1, got %d", c.TopN))
	}
	if c.MaxTopN < c.TopN {
		errs = append(errs, fmt.Errorf("MAX_TOP_N (%d) must be >= TOP_N (%d)", c.MaxTopN, c.TopN))
	}
	if c.RateLimitRequests > 0 && c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CacheEnabled reports whether computed recommendations may be cached. The
// file catalog is reread per request, so caching would hide edits to it.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.CatalogSource != CatalogFile
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
