package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Detector Metrics - Prometheus metrics for the inference serving layer
// =============================================================================

var (
	// CacheHits tracks prediction cache hits per backend
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detective_score_cache_hits_total",
			Help: "The total number of prediction cache hits",
		},
		[]string{"backend"},
	)

	// CacheMisses tracks prediction cache misses per backend
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detective_score_cache_misses_total",
			Help: "The total number of prediction cache misses",
		},
		[]string{"backend"},
	)

	// CacheEntries tracks the current number of cached predictions
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "detective_score_cache_entries",
			Help: "The current number of entries held by the prediction cache",
		},
		[]string{"backend"},
	)

	// ModelLoads tracks model load attempts by model name and status
	ModelLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detective_model_loads_total",
			Help: "The total number of model load attempts",
		},
		[]string{"model", "status"},
	)

	// ModelLoadDuration tracks how long model loading takes
	ModelLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "detective_model_load_duration_seconds",
			Help:    "The duration of model artifact loading in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	// InferenceDuration tracks per-model inference latency
	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "detective_inference_duration_seconds",
			Help:    "The duration of model inference in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"model"},
	)

	// EnhancementRequests tracks explanation attempts by outcome
	// (enriched, fallback_disabled, fallback_error, fallback_timeout)
	EnhancementRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detective_enhancement_requests_total",
			Help: "The total number of explanation enrichment attempts by outcome",
		},
		[]string{"outcome"},
	)

	// EnhancementDuration tracks the latency of remote explanation calls
	EnhancementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "detective_enhancement_duration_seconds",
			Help:    "The duration of remote explanation calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)

	// AnalysisRequests tracks top-level analyze calls by content kind and status
	AnalysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detective_analysis_requests_total",
			Help: "The total number of analysis requests by content kind and status",
		},
		[]string{"kind", "status"},
	)
)
