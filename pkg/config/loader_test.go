package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestParseAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "routing:\n  device_hint: cpu\n")

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.DecisionThreshold != DefaultDecisionThreshold {
		t.Errorf("expected default decision threshold, got %v", cfg.DecisionThreshold)
	}
	if cfg.Routing.ShortInputThreshold != DefaultShortInputThreshold {
		t.Errorf("expected default short input threshold, got %d", cfg.Routing.ShortInputThreshold)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("expected memory backend by default, got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.MaxEntries != DefaultCacheMaxEntries {
		t.Errorf("expected default cache size, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Routing.DeviceHint != "cpu" {
		t.Errorf("expected explicit device hint to survive, got %q", cfg.Routing.DeviceHint)
	}
}

func TestParseFullConfig(t *testing.T) {
	path := writeConfig(t, `
decision_threshold: 0.65
max_content_bytes: 65536
models:
  artifact_dir: /var/lib/detective/models
routing:
  short_input_threshold: 80
  short_text_model: distil-a
  long_text_model: base-a
  image_model: vision-a
cache:
  backend: redis
  ttl_seconds: 600
  redis:
    addr: localhost:6379
enhancement:
  enabled: true
  endpoint: http://localhost:8081/v1
  model: explainer-v1
  timeout_ms: 2500
`)

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.DecisionThreshold != 0.65 {
		t.Errorf("decision_threshold = %v, want 0.65", cfg.DecisionThreshold)
	}
	if cfg.Routing.ShortInputThreshold != 80 {
		t.Errorf("short_input_threshold = %d, want 80", cfg.Routing.ShortInputThreshold)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if !cfg.Enhancement.Enabled || cfg.Enhancement.TimeoutMs != 2500 {
		t.Errorf("unexpected enhancement config: %+v", cfg.Enhancement)
	}
}

func TestParseKeepsExplicitZeros(t *testing.T) {
	path := writeConfig(t, "decision_threshold: 0\nrouting:\n  short_input_threshold: 0\n")

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.DecisionThreshold != 0 {
		t.Errorf("explicit decision_threshold: 0 was rewritten to %v", cfg.DecisionThreshold)
	}
	if cfg.Routing.ShortInputThreshold != 0 {
		t.Errorf("explicit short_input_threshold: 0 was rewritten to %d", cfg.Routing.ShortInputThreshold)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	path := writeConfig(t, "routing: [not a map")
	if _, err := Parse(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "decision_threshold: 1.5\n")
	if _, err := Parse(path); err == nil {
		t.Error("expected validation to reject an out-of-range threshold")
	}
}

func TestReplaceAndGet(t *testing.T) {
	cfg := NewDefault()
	cfg.DecisionThreshold = 0.7
	Replace(cfg)

	got := Get()
	if got == nil || got.DecisionThreshold != 0.7 {
		t.Errorf("Get returned %+v, want the replaced config", got)
	}
}
