package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/config"
)

// NewScoreCache builds the ScoreCache selected by the configuration.
func NewScoreCache(ctx context.Context, cfg config.CacheConfig) (ScoreCache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryScoreCache(cfg.MaxEntries), nil
	case "redis":
		return NewRedisScoreCache(ctx, RedisScoreCacheOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.TTLSeconds) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
