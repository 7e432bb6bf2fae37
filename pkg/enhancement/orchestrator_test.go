package enhancement

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
)

type stubClient struct {
	reasons []Reason
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (c *stubClient) Explain(ctx context.Context, content string, score model.Score) ([]Reason, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.reasons, nil
}

func positiveScore() model.Score {
	return model.NewScore(0.9, 0.5)
}

func TestEnrichSuccess(t *testing.T) {
	client := &stubClient{reasons: []Reason{
		{Category: "stylistic", Title: "Uniform sentence rhythm", Description: "...", Severity: "medium"},
	}}
	o := NewOrchestrator(client, true, time.Second)

	result := o.Enrich(context.Background(), "content", positiveScore())
	assert.True(t, result.UsedEnhancement)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, "stylistic", result.Reasons[0].Category)
}

func TestEnrichClientErrorFallsBack(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	o := NewOrchestrator(client, true, time.Second)

	result := o.Enrich(context.Background(), "content", positiveScore())
	assert.False(t, result.UsedEnhancement)
	assert.NotEmpty(t, result.Reasons, "fallback must always produce reasons")
}

func TestEnrichTimeoutFallsBack(t *testing.T) {
	client := &stubClient{
		delay:   500 * time.Millisecond,
		reasons: []Reason{{Category: "x", Title: "x", Description: "x", Severity: "low"}},
	}
	o := NewOrchestrator(client, true, 20*time.Millisecond)

	start := time.Now()
	result := o.Enrich(context.Background(), "content", positiveScore())
	elapsed := time.Since(start)

	assert.False(t, result.UsedEnhancement)
	assert.NotEmpty(t, result.Reasons)
	assert.Less(t, elapsed, 300*time.Millisecond, "fallback must arrive within the timeout plus negligible overhead")
}

func TestEnrichDisabledMakesNoCall(t *testing.T) {
	client := &stubClient{reasons: []Reason{{Category: "x", Title: "x", Description: "x", Severity: "low"}}}
	o := NewOrchestrator(client, false, time.Second)

	result := o.Enrich(context.Background(), "content", positiveScore())
	assert.False(t, result.UsedEnhancement)
	assert.NotEmpty(t, result.Reasons)
	assert.Equal(t, int32(0), client.calls.Load(), "disabled orchestrator must not call the client")
}

func TestEnrichNilClientForcesDisabled(t *testing.T) {
	o := NewOrchestrator(nil, true, time.Second)
	assert.False(t, o.Enabled())

	result := o.Enrich(context.Background(), "content", positiveScore())
	assert.False(t, result.UsedEnhancement)
	assert.NotEmpty(t, result.Reasons)
}

func TestFallbackReasonsDeterministic(t *testing.T) {
	score := model.NewScore(0.73, 0.5)
	first := FallbackReasons(score)
	second := FallbackReasons(score)
	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	for _, r := range first {
		assert.NotEmpty(t, r.Category)
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Description)
		assert.NotEmpty(t, r.Severity)
	}
}

func TestFallbackSeverityBands(t *testing.T) {
	assert.Equal(t, "high", severityFor(0.95))
	assert.Equal(t, "high", severityFor(0.9))
	assert.Equal(t, "medium", severityFor(0.75))
	assert.Equal(t, "low", severityFor(0.55))
}
