package routing

import (
	"strings"
	"testing"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/config"
)

func testRouter() *Router {
	return NewRouter(config.RoutingConfig{
		ShortInputThreshold: 50,
		ShortTextModel:      "detective-distil",
		LongTextModel:       "detective-base",
		ImageModel:          "detective-vision",
		DeviceHint:          "cpu",
	})
}

func TestRouteThresholdBoundary(t *testing.T) {
	r := testRouter()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"short input", "short", "detective-distil"},
		{"exactly at threshold", strings.Repeat("a", 50), "detective-distil"},
		{"one over threshold", strings.Repeat("a", 51), "detective-base"},
		{"long input", strings.Repeat("word ", 100), "detective-base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := r.Route(KindText, tt.text)
			if id.Name != tt.expected {
				t.Errorf("Route(%d chars) = %s, want %s", len(tt.text), id.Name, tt.expected)
			}
		})
	}
}

func TestRouteCountsRunesNotBytes(t *testing.T) {
	r := testRouter()

	// 50 two-byte runes: 100 bytes but still at the threshold.
	text := strings.Repeat("é", 50)
	if id := r.Route(KindText, text); id.Name != "detective-distil" {
		t.Errorf("expected rune-based metric to route to the short variant, got %s", id.Name)
	}
}

func TestRouteEmptyInputFallsBackToDefault(t *testing.T) {
	r := testRouter()
	if id := r.Route(KindText, ""); id.Name != "detective-base" {
		t.Errorf("empty input should route to the default variant, got %s", id.Name)
	}
}

func TestRouteImageKind(t *testing.T) {
	r := testRouter()
	if id := r.Route(KindImage, ""); id.Name != "detective-vision" {
		t.Errorf("image input should route to the image variant, got %s", id.Name)
	}
}

func TestRouteCarriesDeviceHint(t *testing.T) {
	r := testRouter()
	if id := r.Route(KindText, "short"); id.DeviceHint != "cpu" {
		t.Errorf("expected device hint to be carried, got %q", id.DeviceHint)
	}
}

func TestIdentities(t *testing.T) {
	r := testRouter()
	ids := r.Identities()
	if len(ids) != 3 {
		t.Fatalf("expected 3 identities, got %d", len(ids))
	}
}
