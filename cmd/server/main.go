package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/actuallystonmai/travel-recommendation-service/internal/cache"
	"github.com/actuallystonmai/travel-recommendation-service/internal/catalog"
	"github.com/actuallystonmai/travel-recommendation-service/internal/config"
	"github.com/actuallystonmai/travel-recommendation-service/internal/handler"
	"github.com/actuallystonmai/travel-recommendation-service/internal/logging"
	"github.com/actuallystonmai/travel-recommendation-service/internal/model"
	"github.com/actuallystonmai/travel-recommendation-service/internal/repository"
	"github.com/actuallystonmai/travel-recommendation-service/internal/router"
	"github.com/actuallystonmai/travel-recommendation-service/internal/service"
	"github.com/actuallystonmai/travel-recommendation-service/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ Redis ---------------
	var redisCache *cache.Cache
	if cfg.CacheEnabled() {
		redisCache, err = connectRedis(ctx, cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to redis")
		}
	} else if cfg.RedisURL != "" {
		logging.Warn().Msg("recommendation cache disabled for the file catalog")
	}

	// ------------ Catalog ---------------
	var source service.PlaceSource
	switch cfg.CatalogSource {
	case config.CatalogFile:
		source = catalog.NewFile(cfg.CatalogPath)
		logging.Info().Str("path", cfg.CatalogPath).Msg("using file catalog")
	case config.CatalogPostgres:
		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to set up postgres catalog")
		}
		defer pool.Close()

		// for migrate-down using CLI command
		if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
			if err := migrate(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
				logging.Fatal().Err(err).Msg("failed to migrate down")
			}
			logging.Info().Msg("migrations dropped")
			return
		}

		if err := migrate(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate up")
		}

		repo := repository.NewRepository(pool)
		if cfg.SeedCatalog {
			seeded, err := checkSeed(ctx, pool, repo)
			if err != nil {
				logging.Fatal().Err(err).Msg("failed to check seed")
			}
			// cached lists were computed against the previous catalog
			if seeded && redisCache != nil {
				if err := redisCache.Clear(ctx); err != nil {
					logging.Warn().Err(err).Msg("failed to clear recommendation cache")
				}
			}
		}
		source = catalog.NewPostgres(repo)
	default:
		source = catalog.NewStatic(catalog.Default())
		logging.Info().Msg("using inline catalog")
	}

	// ---------------- Server --------------------
	var recCache service.RecommendationCache
	if redisCache != nil {
		recCache = redisCache
	}
	svc := service.NewService(source, recCache, model.NewScorer(), service.Options{
		DefaultLimit: cfg.TopN,
		MaxLimit:     cfg.MaxTopN,
	})

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(handler.NewHandler(svc), router.Options{
			RequestTimeout:     cfg.RequestTimeout,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitRequests:  cfg.RateLimitRequests,
			RateLimitWindow:    cfg.RateLimitWindow,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Int("top_n", cfg.TopN).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
	logging.Info().Msg("server stopped")
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := waitForDB(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logging.Info().Msg("connected to PostgreSQL")
	return pool, nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logging.Info().Int("attempt", i+1).Msg("waiting for database")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrate(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.Info().Str("file", path).Msg("migration applied")
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, repo *repository.Repository) (bool, error) {
	count, err := repo.CountPlaces(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		logging.Info().Int("places", count).Msg("database already seeded, skipping")
		return false, nil
	}
	if err := seeds.Setup(ctx, pool, catalog.Default()); err != nil {
		return false, err
	}
	return true, nil
}

func connectRedis(ctx context.Context, cfg *config.Config) (*cache.Cache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	c := cache.NewCache(redis.NewClient(opts), cfg.CacheTTL)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logging.Info().Dur("ttl", cfg.CacheTTL).Msg("connected to Redis")
	return c, nil
}
