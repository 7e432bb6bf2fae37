package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability/logging"
)

var (
	config     *DetectorConfig
	configOnce sync.Once
	configErr  error
	configMu   sync.RWMutex
)

// Load loads the configuration from the specified YAML file once and caches it
// globally. Subsequent calls return the cached config regardless of path.
func Load(configPath string) (*DetectorConfig, error) {
	configOnce.Do(func() {
		cfg, err := Parse(configPath)
		if err != nil {
			configErr = err
			return
		}
		configMu.Lock()
		config = cfg
		configMu.Unlock()
	})
	if configErr != nil {
		return nil, configErr
	}
	configMu.RLock()
	defer configMu.RUnlock()
	return config, nil
}

// Parse parses the YAML config file without touching the global cache.
func Parse(configPath string) (*DetectorConfig, error) {
	// Resolve symlinks to handle Kubernetes ConfigMap mounts
	resolved, _ := filepath.EvalSymlinks(configPath)
	if resolved == "" {
		resolved = configPath
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over a pre-populated config so only keys present in the file
	// override defaults. An explicit zero (e.g. decision_threshold: 0) is a
	// value, not a request for the default.
	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logging.Infof("Config loaded: path=%s cache_backend=%s enhancement_enabled=%t",
		configPath, cfg.Cache.Backend, cfg.Enhancement.Enabled)
	return cfg, nil
}

// Replace replaces the globally cached config. It is safe for concurrent
// readers.
func Replace(newCfg *DetectorConfig) {
	configMu.Lock()
	config = newCfg
	configErr = nil
	configMu.Unlock()
	logging.Infof("Global config replaced: cache_backend=%s enhancement_enabled=%t",
		newCfg.Cache.Backend, newCfg.Enhancement.Enabled)
}

// Get returns the current configuration, or nil if none has been loaded.
func Get() *DetectorConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}

// NewDefault returns a config populated with defaults only. Useful for tests
// and for placeholder mode.
func NewDefault() *DetectorConfig {
	cfg := &DetectorConfig{}
	applyDefaults(cfg)
	return cfg
}
