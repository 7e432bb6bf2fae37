package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability/logging"
)

const (
	redisBackendName = "redis"
	redisKeyPrefix   = "detective:score:"
)

// RedisScoreCache is a ScoreCache on a shared redis instance, for deployments
// where several replicas should reuse each other's predictions. Entries are
// JSON-encoded scores with an optional TTL; eviction is delegated to redis.
// Hit/miss counters are process-local.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64
}

// RedisScoreCacheOptions configures the redis backend.
type RedisScoreCacheOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisScoreCache connects to redis and verifies the connection.
func NewRedisScoreCache(ctx context.Context, options RedisScoreCacheOptions) (*RedisScoreCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     options.Addr,
		Password: options.Password,
		DB:       options.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", options.Addr, err)
	}
	logging.Infof("Redis score cache connected: addr=%s ttl=%s", options.Addr, options.TTL)
	return &RedisScoreCache{client: client, ttl: options.TTL}, nil
}

func redisKey(fp Fingerprint) string {
	return redisKeyPrefix + fp.Hex()
}

func (c *RedisScoreCache) Get(ctx context.Context, fp Fingerprint) (model.Score, bool, error) {
	data, err := c.client.Get(ctx, redisKey(fp)).Bytes()
	if err == redis.Nil {
		c.misses.Add(1)
		observability.CacheMisses.WithLabelValues(redisBackendName).Inc()
		return model.Score{}, false, nil
	}
	if err != nil {
		return model.Score{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var score model.Score
	if err := json.Unmarshal(data, &score); err != nil {
		// A corrupt entry behaves like a miss; the caller recomputes and
		// overwrites it.
		logging.Warnf("Discarding corrupt cache entry: key=%s err=%v", redisKey(fp), err)
		c.misses.Add(1)
		observability.CacheMisses.WithLabelValues(redisBackendName).Inc()
		return model.Score{}, false, nil
	}

	c.hits.Add(1)
	observability.CacheHits.WithLabelValues(redisBackendName).Inc()
	return score, true, nil
}

func (c *RedisScoreCache) Put(ctx context.Context, fp Fingerprint, score model.Score) error {
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}
	if err := c.client.Set(ctx, redisKey(fp), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *RedisScoreCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", 512).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// ResetStats zeroes the process-local hit/miss counters.
func (c *RedisScoreCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}

func (c *RedisScoreCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		// Entry count and bound live in redis, not in this process.
		CurrentSize: -1,
		MaxSize:     -1,
	}
}

func (c *RedisScoreCache) Close() error {
	return c.client.Close()
}
