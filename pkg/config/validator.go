package config

import (
	"fmt"
	"strings"
)

// Validate checks structural invariants of the parsed configuration.
// Defaults are expected to have been applied already.
func Validate(cfg *DetectorConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if cfg.DecisionThreshold < 0 || cfg.DecisionThreshold > 1 {
		return fmt.Errorf("decision_threshold must be in [0,1], got: %v", cfg.DecisionThreshold)
	}
	if cfg.MaxContentBytes <= 0 {
		return fmt.Errorf("max_content_bytes must be positive, got: %d", cfg.MaxContentBytes)
	}
	if cfg.Routing.ShortInputThreshold < 0 {
		return fmt.Errorf("routing.short_input_threshold cannot be negative, got: %d", cfg.Routing.ShortInputThreshold)
	}
	if cfg.Routing.ShortTextModel == "" || cfg.Routing.LongTextModel == "" {
		return fmt.Errorf("routing requires both short_text_model and long_text_model")
	}

	switch strings.ToLower(cfg.Cache.Backend) {
	case "memory":
		if cfg.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive for the memory backend, got: %d", cfg.Cache.MaxEntries)
		}
	case "redis":
		if cfg.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q, expected \"memory\" or \"redis\"", cfg.Cache.Backend)
	}

	if cfg.Enhancement.Enabled {
		if cfg.Enhancement.Endpoint == "" {
			return fmt.Errorf("enhancement.endpoint is required when enhancement is enabled")
		}
		if cfg.Enhancement.Model == "" {
			return fmt.Errorf("enhancement.model is required when enhancement is enabled")
		}
		if cfg.Enhancement.TimeoutMs <= 0 {
			return fmt.Errorf("enhancement.timeout_ms must be positive, got: %d", cfg.Enhancement.TimeoutMs)
		}
	}

	return nil
}
