package config

// DetectorConfig is the root configuration for the detection serving layer.
type DetectorConfig struct {
	// DecisionThreshold is the probability cutoff above which content is
	// classified as AI-generated. Defaults to 0.5.
	DecisionThreshold float64 `yaml:"decision_threshold"`

	// MaxContentBytes rejects oversized submissions before they reach the
	// router. Defaults to 1 MiB.
	MaxContentBytes int `yaml:"max_content_bytes"`

	Models      ModelsConfig      `yaml:"models"`
	Routing     RoutingConfig     `yaml:"routing"`
	Cache       CacheConfig       `yaml:"cache"`
	Enhancement EnhancementConfig `yaml:"enhancement"`
}

// ModelsConfig describes where model artifacts are fetched from.
type ModelsConfig struct {
	// ArtifactDir is the local directory holding one subdirectory per model
	// (tokenizer.json + model.bin).
	ArtifactDir string `yaml:"artifact_dir"`
}

// RoutingConfig selects which model variant serves a given input.
type RoutingConfig struct {
	// ShortInputThreshold is the inclusive character count at or below which
	// text is served by the short-input variant. Defaults to 50.
	ShortInputThreshold int `yaml:"short_input_threshold"`

	ShortTextModel string `yaml:"short_text_model"`
	LongTextModel  string `yaml:"long_text_model"`
	ImageModel     string `yaml:"image_model"`

	// DeviceHint is passed through to the model identity (e.g. "cpu",
	// "cuda:0").
	DeviceHint string `yaml:"device_hint"`
}

// CacheConfig configures the prediction cache.
type CacheConfig struct {
	// Backend selects the cache implementation: "memory" (default) or
	// "redis".
	Backend string `yaml:"backend"`

	// MaxEntries bounds the in-memory backend. Defaults to 1024.
	MaxEntries int `yaml:"max_entries"`

	// TTLSeconds applies to the redis backend only; 0 means no expiry.
	TTLSeconds int `yaml:"ttl_seconds"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds connection settings for the shared redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// EnhancementConfig configures the optional remote explanation service.
type EnhancementConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`

	// TimeoutMs bounds a single explanation attempt. Defaults to 5000.
	TimeoutMs int `yaml:"timeout_ms"`
}

// Default values pre-populated before YAML decoding.
const (
	DefaultDecisionThreshold   = 0.5
	DefaultMaxContentBytes     = 1 << 20
	DefaultShortInputThreshold = 50
	DefaultCacheMaxEntries     = 1024
	DefaultEnhancementTimeout  = 5000

	DefaultShortTextModel = "detective-distil"
	DefaultLongTextModel  = "detective-base"
	DefaultImageModel     = "detective-vision"
)

func applyDefaults(cfg *DetectorConfig) {
	if cfg.DecisionThreshold == 0 {
		cfg.DecisionThreshold = DefaultDecisionThreshold
	}
	if cfg.MaxContentBytes == 0 {
		cfg.MaxContentBytes = DefaultMaxContentBytes
	}
	if cfg.Routing.ShortInputThreshold == 0 {
		cfg.Routing.ShortInputThreshold = DefaultShortInputThreshold
	}
	if cfg.Routing.ShortTextModel == "" {
		cfg.Routing.ShortTextModel = DefaultShortTextModel
	}
	if cfg.Routing.LongTextModel == "" {
		cfg.Routing.LongTextModel = DefaultLongTextModel
	}
	if cfg.Routing.ImageModel == "" {
		cfg.Routing.ImageModel = DefaultImageModel
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if cfg.Enhancement.TimeoutMs == 0 {
		cfg.Enhancement.TimeoutMs = DefaultEnhancementTimeout
	}
}
