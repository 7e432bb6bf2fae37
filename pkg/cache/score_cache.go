package cache

import (
	"context"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
)

// ScoreCache memoizes prediction scores by content fingerprint. A score is a
// pure function of its input, so a racing double-compute for the same
// fingerprint is harmless; returning a torn entry is not, and implementations
// must never do so.
type ScoreCache interface {
	// Get returns the cached score for fp, if present.
	Get(ctx context.Context, fp Fingerprint) (model.Score, bool, error)

	// Put stores the score for fp, evicting as needed to stay within bounds.
	Put(ctx context.Context, fp Fingerprint, score model.Score) error

	// Clear removes all entries. Called on model reload, since a new model
	// generation invalidates previous scores. Hit/miss counters survive.
	Clear(ctx context.Context) error

	// Stats returns a snapshot of the observability counters.
	Stats() Stats

	// Close releases backend resources.
	Close() error
}

// Stats is a point-in-time snapshot of cache counters. Hits and Misses grow
// monotonically and are reset only by an explicit ResetStats, independent of
// entry eviction or Clear.
type Stats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	CurrentSize int    `json:"current_size"`
	MaxSize     int    `json:"max_size"`
}
