package config

import (
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "REQUEST_TIMEOUT", "CATALOG_SOURCE", "CATALOG_PATH", "SEED_CATALOG",
	"DATABASE_URL", "DB_POOL_SIZE", "REDIS_URL", "CACHE_TTL", "TOP_N", "MAX_TOP_N",
	"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir()) // no stray .env
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("expected port 8080, got %d (%s)", cfg.Port, cfg.Addr())
	}
	if cfg.CatalogSource != CatalogInline {
		t.Errorf("expected inline catalog, got %s", cfg.CatalogSource)
	}
	if cfg.TopN != 3 || cfg.MaxTopN != 10 {
		t.Errorf("expected top N 3/10, got %d/%d", cfg.TopN, cfg.MaxTopN)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected all origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CacheEnabled() {
		t.Error("cache should be disabled without REDIS_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_SOURCE", "FILE")
	t.Setenv("CATALOG_PATH", "/data/places.json")
	t.Setenv("TOP_N", "10")
	t.Setenv("MAX_TOP_N", "20")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SEED_CATALOG", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.CatalogSource != CatalogFile || cfg.CatalogPath != "/data/places.json" {
		t.Errorf("unexpected catalog %s %s", cfg.CatalogSource, cfg.CatalogPath)
	}
	if cfg.TopN != 10 || cfg.MaxTopN != 20 {
		t.Errorf("unexpected top N %d/%d", cfg.TopN, cfg.MaxTopN)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("expected 90s ttl, got %v", cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SeedCatalog {
		t.Error("expected seeding to be disabled")
	}
	// file catalog bypasses the cache
	if cfg.CacheEnabled() {
		t.Error("cache should be disabled for the file catalog")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected defaults, got %d %v", cfg.Port, cfg.RequestTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Port: 8080, CatalogSource: CatalogInline, TopN: 3, MaxTopN: 10, RateLimitRequests: 100, RateLimitWindow: time.Minute}
	}

	tests := []struct {
		name string
		edit func(c *Config)
		want string
	}{
		{"unknown source", func(c *Config) { c.CatalogSource = "s3" }, "unknown CATALOG_SOURCE"},
		{"file without path", func(c *Config) { c.CatalogSource = CatalogFile }, "CATALOG_PATH"},
		{"postgres without url", func(c *Config) { c.CatalogSource = CatalogPostgres }, "DATABASE_URL"},
		{"zero top n", func(c *Config) { c.TopN = 0 }, "TOP_N"},
		{"max below top n", func(c *Config) { c.MaxTopN = 2 }, "MAX_TOP_N"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"bad window", func(c *Config) { c.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
	}

	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.edit(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
