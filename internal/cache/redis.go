package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 10 * time.Minute
	keyPrefix  = "rec:pref:"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// buildKey hashes the preference with set fields sorted and deduplicated,
// so equivalent preferences share a key.
func buildKey(pref domain.UserPreference, limit int) string {
	var b strings.Builder
	writeField(&b, pref.Budget)
	writeSet(&b, pref.Vibe)
	writeField(&b, strconv.Itoa(pref.MinAccommodationRating))
	writeField(&b, strconv.Itoa(pref.MinSafetyRating))
	writeField(&b, pref.PreferredCrowd)
	writeSet(&b, pref.Liked)
	writeSet(&b, pref.Disliked)

	return fmt.Sprintf("%s%016x:limit:%d", keyPrefix, xxhash.Sum64String(b.String()), limit)
}

// Fields are length-prefixed so values containing separators cannot collide.
func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func writeSet(b *strings.Builder, items []string) {
	set := slices.Clone(items)
	slices.Sort(set)
	set = slices.Compact(set)

	writeField(b, strconv.Itoa(len(set)))
	for _, s := range set {
		writeField(b, s)
	}
}

// Get recommendations from cache
func (c *Cache) Get(ctx context.Context, pref domain.UserPreference, limit int) ([]domain.Recommendation, bool, error) {
	key := buildKey(pref, limit)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal(val, &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	return recs, true, nil
}

// Store recommendations in cache
func (c *Cache) Set(ctx context.Context, pref domain.UserPreference, limit int, recs []domain.Recommendation) error {
	key := buildKey(pref, limit)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}

	return nil
}

// Clear drops every cached recommendation, used after the catalog is reseeded.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
