package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
	"github.com/actuallystonmai/travel-recommendation-service/internal/logging"
	"github.com/actuallystonmai/travel-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/travel-recommendation-service/internal/model"
)

const (
	defaultLimit     = 3
	maxLimit         = 10
	batchConcurrency = 10
)

// PlaceSource provides the catalog the scorer runs against.
type PlaceSource interface {
	Places(ctx context.Context) ([]domain.Place, error)
}

// RecommendationCache stores computed lists keyed by preference and limit.
type RecommendationCache interface {
	Get(ctx context.Context, pref domain.UserPreference, limit int) ([]domain.Recommendation, bool, error)
	Set(ctx context.Context, pref domain.UserPreference, limit int, recs []domain.Recommendation) error
}

type Options struct {
	DefaultLimit int
	MaxLimit     int
}

type Service struct {
	catalog      PlaceSource
	cache        RecommendationCache
	scorer       *model.Scorer
	defaultLimit int
	maxLimit     int
}

// NewService wires the scorer to a catalog. cache may be nil to disable caching.
func NewService(catalog PlaceSource, cache RecommendationCache, scorer *model.Scorer, opts Options) *Service {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = maxLimit
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}

	return &Service{
		catalog:      catalog,
		cache:        cache,
		scorer:       scorer,
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
	}
}

func (s *Service) DefaultLimit() int { return s.defaultLimit }

func (s *Service) MaxLimit() int { return s.maxLimit }

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// Recommend returns the top places for pref. limit <= 0 uses the default N.
func (s *Service) Recommend(ctx context.Context, pref domain.UserPreference, limit int) (*domain.RecommendationResult, error) {
	limit = s.clampLimit(limit)
	log := logging.Ctx(ctx)

	// Check Cache
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, pref, limit)
		if err != nil {
			metrics.RecordCacheResult("error")
			log.Warn().Err(err).Msg("[service] cache get failed")
		}

		// Use recommendations from cache if available
		if found {
			metrics.RecordCacheResult("hit")
			metrics.RecordRecommendations(len(cached))
			return &domain.RecommendationResult{
				Recommendations: cached,
				CacheHit:        true,
			}, nil
		}
		if err == nil {
			metrics.RecordCacheResult("miss")
		}
	}

	recs, err := s.generateRecommendations(ctx, pref, limit)
	if err != nil {
		return nil, err
	}

	// Store recommendations in cache
	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, pref, limit, recs); cacheErr != nil {
			log.Warn().Err(cacheErr).Msg("[service] cache set failed")
		}
	}

	metrics.RecordRecommendations(len(recs))
	return &domain.RecommendationResult{
		Recommendations: recs,
		CacheHit:        false,
	}, nil
}

func (s *Service) generateRecommendations(ctx context.Context, pref domain.UserPreference, limit int) ([]domain.Recommendation, error) {
	places, err := s.Places(ctx)
	if err != nil {
		return nil, err
	}

	return s.scorer.Score(model.ScoreInput{
		Preference: pref,
		Places:     places,
		Limit:      limit,
	}), nil
}

// Places loads the catalog.
func (s *Service) Places(ctx context.Context) ([]domain.Place, error) {
	places, err := s.catalog.Places(ctx)
	metrics.RecordCatalogLoad(len(places), err)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return places, nil
}

// RecommendBatch scores every preference independently with a bounded
// worker pool. Results keep the input order.
func (s *Service) RecommendBatch(ctx context.Context, prefs []domain.UserPreference, limit int) *domain.BatchResponse {
	start := time.Now()

	results := make([]domain.BatchItemResult, len(prefs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, pref := range prefs {
		wg.Add(1)
		go func(idx int, p domain.UserPreference) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processBatchItem(ctx, idx, p, limit)
		}(i, pref)
	}
	wg.Wait()

	// summary
	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Results: results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func (s *Service) processBatchItem(ctx context.Context, idx int, pref domain.UserPreference, limit int) domain.BatchItemResult {
	result, err := s.Recommend(ctx, pref, limit)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("index", idx).Msg("[service] batch item failed")
		code, msg := CategorizeError(err)
		return domain.BatchItemResult{
			Index:   idx,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}

	return domain.BatchItemResult{
		Index:             idx,
		RecommendedPlaces: result.Recommendations,
		Status:            domain.StatusSuccess,
	}
}

// CategorizeError maps an error to an API error code and message.
func CategorizeError(err error) (string, string) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "request_timeout", "request timed out, please try again"
	}
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		return "catalog_unavailable", "place catalog is temporarily unavailable"
	}
	return "internal_error", "an unexpected error occurred"
}
