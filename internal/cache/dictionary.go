package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DictionaryCache stores whole reference dictionaries (sync states,
// supervisors, modalities) in Redis under a TTL set at construction time.
type DictionaryCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewDictionaryCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *DictionaryCache {
	return &DictionaryCache{client: client, logger: logger, ttl: ttl}
}

// Get unmarshals the cached dictionary into dest and reports whether it was
// present. Redis being down is treated as a miss, not an error.
func (c *DictionaryCache) Get(ctx context.Context, key string, dest interface{}) bool {
	cached, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		c.logger.Warn("corrupt dictionary cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set serializes data under key. Failures are logged, never propagated: the
// cache is an optimization, not a source of truth.
func (c *DictionaryCache) Set(ctx context.Context, key string, data interface{}) {
	serialized, err := json.Marshal(data)
	if err != nil {
		c.logger.Warn("failed to serialize dictionary", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, serialized, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache dictionary", zap.String("key", key), zap.Error(err))
	}
}
