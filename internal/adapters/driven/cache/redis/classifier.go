// Package redis memoises AI classification answers in Redis.
package redis

import (
	"context"
	"crypto/md5" //nolint:gosec // Used for cache keys, not security.
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/logger"
)

// Ensure CachedClassifier implements the interface.
var _ driven.AIClassifier = (*CachedClassifier)(nil)

// DefaultTTL keeps a label for thirty days.
const DefaultTTL = 30 * 24 * time.Hour

const keyPrefix = "siria:category:"

// CachedClassifier wraps an AI classifier with a Redis read-through cache.
// Redis failures are logged and the inner classifier is called instead.
type CachedClassifier struct {
	inner driven.AIClassifier
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedClassifier wraps inner. ttl <= 0 selects DefaultTTL.
func NewCachedClassifier(inner driven.AIClassifier, client *redis.Client, ttl time.Duration) *CachedClassifier {
	if inner == nil {
		panic("redis.NewCachedClassifier: inner classifier is nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedClassifier{inner: inner, redis: client, ttl: ttl}
}

// NewClient creates a Redis client for addr and checks it responds.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Classify returns the cached label for the event or asks the inner classifier.
// Only taxonomy labels are stored.
func (c *CachedClassifier) Classify(ctx context.Context, name, description, organization string) (string, error) {
	key := CacheKey(name, description, organization)

	if label, ok := c.load(ctx, key); ok {
		return label, nil
	}

	label, err := c.inner.Classify(ctx, name, description, organization)
	if err != nil {
		return "", err
	}

	if domain.IsTaxonomyCategory(label) {
		c.store(ctx, key, label)
	}
	return label, nil
}

func (c *CachedClassifier) load(ctx context.Context, key string) (string, bool) {
	if c.redis == nil {
		return "", false
	}
	label, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Debug("classification cache read failed: %v", err)
		}
		return "", false
	}
	if !domain.IsTaxonomyCategory(label) {
		_ = c.redis.Del(ctx, key).Err()
		return "", false
	}
	return label, true
}

func (c *CachedClassifier) store(ctx context.Context, key, label string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Set(ctx, key, label, c.ttl).Err(); err != nil {
		logger.Debug("classification cache write failed: %v", err)
	}
}

// CacheKey derives the cache key from the classifier inputs.
func CacheKey(name, description, organization string) string {
	sum := md5.Sum([]byte(name + "\x00" + description + "\x00" + organization)) //nolint:gosec // Cache key.
	return keyPrefix + hex.EncodeToString(sum[:])
}
