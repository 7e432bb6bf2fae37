package model

import (
	"context"
	"sync"
	"time"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability/logging"
)

// Handle owns the loaded state of one heavy model. It is created unloaded;
// Load acquires the tokenizer and model, Unload releases them. Predict is
// read-only with respect to handle state, so concurrent predictions on a
// loaded handle proceed in parallel.
type Handle struct {
	identity  Identity
	source    ArtifactSource
	decoder   ArtifactDecoder
	threshold float64

	mu        sync.RWMutex
	tokenizer Tokenizer
	model     InferenceModel
}

// NewHandle creates an unloaded handle. threshold is the decision cutoff
// applied to raw probabilities.
func NewHandle(identity Identity, source ArtifactSource, decoder ArtifactDecoder, threshold float64) *Handle {
	return &Handle{
		identity:  identity,
		source:    source,
		decoder:   decoder,
		threshold: threshold,
	}
}

// Identity returns the model identity this handle serves.
func (h *Handle) Identity() Identity {
	return h.identity
}

// Load fetches and decodes the model artifacts. It is idempotent: calling it
// on a loaded handle is a no-op. On failure the handle remains fully
// unloaded; the tokenizer is never published without the model.
func (h *Handle) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tokenizer != nil && h.model != nil {
		return nil
	}

	start := time.Now()
	tokenizerBlob, modelBlob, err := h.source.FetchArtifact(ctx, h.identity.Name)
	if err != nil {
		observability.ModelLoads.WithLabelValues(h.identity.Name, "error").Inc()
		return &LoadError{Model: h.identity.Name, Err: err}
	}

	tokenizer, err := h.decoder.DecodeTokenizer(tokenizerBlob)
	if err != nil {
		observability.ModelLoads.WithLabelValues(h.identity.Name, "error").Inc()
		return &LoadError{Model: h.identity.Name, Err: err}
	}
	model, err := h.decoder.DecodeModel(modelBlob)
	if err != nil {
		observability.ModelLoads.WithLabelValues(h.identity.Name, "error").Inc()
		return &LoadError{Model: h.identity.Name, Err: err}
	}

	// Publish both together so IsLoaded never observes a partial state.
	h.tokenizer = tokenizer
	h.model = model

	observability.ModelLoads.WithLabelValues(h.identity.Name, "success").Inc()
	observability.ModelLoadDuration.WithLabelValues(h.identity.Name).Observe(time.Since(start).Seconds())
	logging.Infof("Model loaded: model=%s device=%s duration=%s",
		h.identity.Name, h.identity.DeviceHint, time.Since(start))
	return nil
}

// IsLoaded reports whether both tokenizer and model are present.
func (h *Handle) IsLoaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tokenizer != nil && h.model != nil
}

// Unload clears the heavy references so they can be garbage collected.
// Idempotent.
func (h *Handle) Unload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tokenizer == nil && h.model == nil {
		return
	}
	h.tokenizer = nil
	h.model = nil
	logging.Infof("Model unloaded: model=%s", h.identity.Name)
}

// Predict runs inference on input and derives a Score from the raw
// probability. Returns *NotLoadedError when the handle is unloaded.
// Inference runs to completion once started.
func (h *Handle) Predict(ctx context.Context, input []byte) (Score, error) {
	h.mu.RLock()
	tokenizer, model := h.tokenizer, h.model
	h.mu.RUnlock()

	if tokenizer == nil || model == nil {
		return Score{}, &NotLoadedError{Model: h.identity.Name}
	}

	start := time.Now()
	tokens, err := tokenizer.Tokenize(input)
	if err != nil {
		return Score{}, err
	}
	probability, err := model.Infer(ctx, tokens)
	if err != nil {
		return Score{}, err
	}
	observability.InferenceDuration.WithLabelValues(h.identity.Name).Observe(time.Since(start).Seconds())

	return NewScore(probability, h.threshold), nil
}
