package enhancement

import (
	"context"
	"time"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability/logging"
)

// Orchestrator enriches detection scores with remote explanations while
// guaranteeing a usable result whatever the remote service does. A single
// attempt is made per request, bounded by the configured timeout; every
// failure mode (transport, timeout, malformed payload) collapses into the
// deterministic fallback. Errors never reach the caller.
type Orchestrator struct {
	client  Client
	enabled bool
	timeout time.Duration
}

// NewOrchestrator creates an orchestrator. A nil client forces disabled mode
// regardless of enabled, covering missing credentials at startup.
func NewOrchestrator(client Client, enabled bool, timeout time.Duration) *Orchestrator {
	if client == nil {
		enabled = false
	}
	return &Orchestrator{
		client:  client,
		enabled: enabled,
		timeout: timeout,
	}
}

// Enabled reports whether remote enrichment is attempted at all.
func (o *Orchestrator) Enabled() bool {
	return o.enabled
}

// Enrich returns an explanation for the score. When enhancement is disabled
// no outbound call is made.
func (o *Orchestrator) Enrich(ctx context.Context, content string, score model.Score) Result {
	if !o.enabled {
		observability.EnhancementRequests.WithLabelValues("fallback_disabled").Inc()
		return Result{Reasons: FallbackReasons(score), UsedEnhancement: false}
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	reasons, err := o.client.Explain(callCtx, content, score)
	elapsed := time.Since(start)
	if err != nil {
		outcome := "fallback_error"
		if callCtx.Err() == context.DeadlineExceeded {
			outcome = "fallback_timeout"
		}
		observability.EnhancementRequests.WithLabelValues(outcome).Inc()
		observability.EnhancementDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
		logging.Warnf("Explanation unavailable, using fallback: err=%v elapsed=%s", err, elapsed)
		return Result{Reasons: FallbackReasons(score), UsedEnhancement: false}
	}

	observability.EnhancementRequests.WithLabelValues("enriched").Inc()
	observability.EnhancementDuration.WithLabelValues("enriched").Observe(elapsed.Seconds())
	logging.Debugf("Explanation enriched: reasons=%d elapsed=%s", len(reasons), elapsed)
	return Result{Reasons: reasons, UsedEnhancement: true}
}
