package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/cache"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/config"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/enhancement"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability/logging"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/routing"
)

// Global analysis service instance
var globalAnalysisService *AnalysisService

// InvalidInputError rejects empty or oversized content before it reaches the
// router.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// AnalysisResult is the complete outcome of one analysis request.
type AnalysisResult struct {
	ID               string             `json:"id"`
	Score            model.Score        `json:"score"`
	Enhancement      enhancement.Result `json:"enhancement"`
	ModelUsed        model.Identity     `json:"model_used"`
	CacheHit         bool               `json:"cache_hit"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
}

// AnalysisService is the single entry point the web layer calls. It wires the
// router, the singleton model registry, the prediction cache and the
// enhancement orchestrator into one pipeline.
type AnalysisService struct {
	registry     *model.Registry
	scores       cache.ScoreCache
	router       *routing.Router
	orchestrator *enhancement.Orchestrator
	cfg          *config.DetectorConfig
}

// NewAnalysisService creates a fully wired service. All collaborators are
// injected so tests can substitute isolated instances instead of resetting
// shared state.
func NewAnalysisService(
	registry *model.Registry,
	scores cache.ScoreCache,
	router *routing.Router,
	orchestrator *enhancement.Orchestrator,
	cfg *config.DetectorConfig,
) *AnalysisService {
	service := &AnalysisService{
		registry:     registry,
		scores:       scores,
		router:       router,
		orchestrator: orchestrator,
		cfg:          cfg,
	}
	// Set as global service for API access
	globalAnalysisService = service
	return service
}

// NewPlaceholderAnalysisService creates a service that answers with a neutral
// score and fallback reasoning. Used when no model artifacts are available,
// so the surrounding system keeps working in API-only mode.
func NewPlaceholderAnalysisService(cfg *config.DetectorConfig) *AnalysisService {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	service := &AnalysisService{
		registry:     nil, // no models - placeholder responses only
		scores:       cache.NewMemoryScoreCache(cfg.Cache.MaxEntries),
		router:       routing.NewRouter(cfg.Routing),
		orchestrator: enhancement.NewOrchestrator(nil, false, 0),
		cfg:          cfg,
	}
	globalAnalysisService = service
	return service
}

// NewAnalysisServiceFromConfig wires a service from configuration. decoder
// binds the opaque inference runtime; when it is nil no models can be loaded
// and the service degrades to placeholder scores, while cache, routing and
// enhancement stay fully functional.
func NewAnalysisServiceFromConfig(ctx context.Context, cfg *config.DetectorConfig, decoder model.ArtifactDecoder) (*AnalysisService, error) {
	if cfg == nil {
		cfg = config.NewDefault()
	}

	scores, err := cache.NewScoreCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	var registry *model.Registry
	if decoder != nil && cfg.Models.ArtifactDir != "" {
		source := model.NewDirArtifactSource(cfg.Models.ArtifactDir)
		registry = model.NewRegistry(source, decoder, cfg.DecisionThreshold)
	} else {
		logging.Warnf("No inference backend available. Using placeholder scores.")
	}

	var client enhancement.Client
	if cfg.Enhancement.Enabled && cfg.Enhancement.Endpoint != "" {
		client = enhancement.NewLLMClient(enhancement.LLMClientOptions{
			Endpoint: cfg.Enhancement.Endpoint,
			APIKey:   cfg.Enhancement.APIKey,
			Model:    cfg.Enhancement.Model,
		})
	}
	orchestrator := enhancement.NewOrchestrator(
		client,
		cfg.Enhancement.Enabled,
		time.Duration(cfg.Enhancement.TimeoutMs)*time.Millisecond,
	)

	return NewAnalysisService(registry, scores, routing.NewRouter(cfg.Routing), orchestrator, cfg), nil
}

// GetGlobalAnalysisService returns the global analysis service instance.
func GetGlobalAnalysisService() *AnalysisService {
	return globalAnalysisService
}

// HasModels returns true if the service can run real inference (not
// placeholder mode).
func (s *AnalysisService) HasModels() bool {
	return s.registry != nil
}

// CacheStats exposes the prediction cache counters for dashboards.
func (s *AnalysisService) CacheStats() cache.Stats {
	return s.scores.Stats()
}

// Analyze classifies content as AI-generated or not and always attaches an
// enhancement result. It returns an error only for invalid input or model
// load failures; everything about the optional enrichment step is absorbed
// internally.
func (s *AnalysisService) Analyze(ctx context.Context, content []byte, kind routing.ContentKind) (*AnalysisResult, error) {
	start := time.Now()

	if len(content) == 0 {
		observability.AnalysisRequests.WithLabelValues(string(kind), "invalid").Inc()
		return nil, &InvalidInputError{Reason: "content is empty"}
	}
	if len(content) > s.cfg.MaxContentBytes {
		observability.AnalysisRequests.WithLabelValues(string(kind), "invalid").Inc()
		return nil, &InvalidInputError{
			Reason: fmt.Sprintf("content exceeds %d bytes", s.cfg.MaxContentBytes),
		}
	}

	// Derive the cache key and the bytes the model sees. Text is normalized
	// so whitespace-only variants share a fingerprint; images are hashed
	// raw.
	var (
		fp        cache.Fingerprint
		predictIn []byte
		normText  string
	)
	switch kind {
	case routing.KindImage:
		fp = cache.FingerprintBytes(content)
		predictIn = content
	default:
		normText = cache.NormalizeText(string(content))
		if normText == "" {
			observability.AnalysisRequests.WithLabelValues(string(kind), "invalid").Inc()
			return nil, &InvalidInputError{Reason: "content is empty after normalization"}
		}
		fp = cache.FingerprintText(normText)
		predictIn = []byte(normText)
	}

	identity := s.router.Route(kind, normText)

	score, hit, err := s.lookupOrPredict(ctx, fp, identity, predictIn)
	if err != nil {
		observability.AnalysisRequests.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}

	enrichContent := normText
	if kind == routing.KindImage {
		enrichContent = "[image submission]"
	}
	enriched := s.orchestrator.Enrich(ctx, enrichContent, score)

	observability.AnalysisRequests.WithLabelValues(string(kind), "success").Inc()
	return &AnalysisResult{
		ID:               uuid.NewString(),
		Score:            score,
		Enhancement:      enriched,
		ModelUsed:        identity,
		CacheHit:         hit,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// lookupOrPredict consults the prediction cache and falls through to model
// inference on a miss. Inference runs outside every cache and registry lock;
// a racing double-compute for the same fingerprint is acceptable because
// scores are pure functions of their input.
func (s *AnalysisService) lookupOrPredict(ctx context.Context, fp cache.Fingerprint, identity model.Identity, input []byte) (model.Score, bool, error) {
	if score, ok, err := s.scores.Get(ctx, fp); err != nil {
		// A failing cache backend degrades to recomputation.
		logging.Warnf("Cache lookup failed, recomputing: err=%v", err)
	} else if ok {
		return score, true, nil
	}

	if s.registry == nil {
		// Placeholder mode: deterministic neutral verdict.
		return model.NewScore(0.5, s.cfg.DecisionThreshold), false, nil
	}

	handle, err := s.registry.GetOrCreate(ctx, identity)
	if err != nil {
		return model.Score{}, false, err
	}
	score, err := handle.Predict(ctx, input)
	if err != nil {
		return model.Score{}, false, err
	}

	if err := s.scores.Put(ctx, fp, score); err != nil {
		logging.Warnf("Cache store failed: err=%v", err)
	}
	return score, false, nil
}

// ResetModel discards the loaded handle for identity and clears the
// prediction cache: a reloaded model is a new generation, so previous scores
// no longer apply.
func (s *AnalysisService) ResetModel(ctx context.Context, identity model.Identity) error {
	if s.registry != nil {
		s.registry.Reset(identity)
	}
	if err := s.scores.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear prediction cache: %w", err)
	}
	logging.Infof("Model reset: model=%s", identity.Name)
	return nil
}

// Close releases cache backend resources.
func (s *AnalysisService) Close() error {
	if s.registry != nil {
		s.registry.ResetAll()
	}
	return s.scores.Close()
}
