package routing

import (
	"unicode/utf8"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/config"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
)

// ContentKind distinguishes the two submission types the detector serves.
type ContentKind string

const (
	KindText  ContentKind = "text"
	KindImage ContentKind = "image"
)

// Router picks the cheapest adequate model variant for an input. Routing is a
// static, total, pure function: it never fails and involves no learning or
// runtime adaptation.
type Router struct {
	shortInputThreshold int
	shortText           model.Identity
	longText            model.Identity
	image               model.Identity
}

// NewRouter builds a router from the routing configuration.
func NewRouter(cfg config.RoutingConfig) *Router {
	return &Router{
		shortInputThreshold: cfg.ShortInputThreshold,
		shortText:           model.Identity{Name: cfg.ShortTextModel, DeviceHint: cfg.DeviceHint},
		longText:            model.Identity{Name: cfg.LongTextModel, DeviceHint: cfg.DeviceHint},
		image:               model.Identity{Name: cfg.ImageModel, DeviceHint: cfg.DeviceHint},
	}
}

// Route returns the model identity that should serve the input.
// normalizedText must already be normalized for text inputs and is ignored
// for images. Short texts (length at or below the threshold, inclusive) go to
// the short-input variant; everything else, including inputs whose metric
// cannot be computed, goes to the long-input default.
func (r *Router) Route(kind ContentKind, normalizedText string) model.Identity {
	if kind == KindImage {
		return r.image
	}

	metric := utf8.RuneCountInString(normalizedText)
	if metric == 0 {
		return r.longText
	}
	if metric <= r.shortInputThreshold {
		return r.shortText
	}
	return r.longText
}

// Identities returns every identity this router can emit, in routing-priority
// order. Used for warmup.
func (r *Router) Identities() []model.Identity {
	return []model.Identity{r.shortText, r.longText, r.image}
}
