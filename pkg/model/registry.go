package model

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability/logging"
)

// Registry guarantees at most one loaded Handle per model identity within the
// process. Construction is lazy and deduplicated; reads after publication
// take only a read lock, and the construction lock is never held across
// Predict calls.
type Registry struct {
	source    ArtifactSource
	decoder   ArtifactDecoder
	threshold float64

	mu      sync.RWMutex
	handles map[Identity]*Handle

	// group collapses concurrent first-access construction per identity.
	// Failed flights are not cached, so the next caller retries from
	// scratch.
	group singleflight.Group
}

// NewRegistry creates an empty registry. All handles it constructs share the
// given source, decoder and decision threshold.
func NewRegistry(source ArtifactSource, decoder ArtifactDecoder, threshold float64) *Registry {
	return &Registry{
		source:    source,
		decoder:   decoder,
		threshold: threshold,
		handles:   make(map[Identity]*Handle),
	}
}

// GetOrCreate returns the process-wide handle for identity, constructing and
// loading it on first access. Concurrent first callers all receive the same
// handle, and Load runs exactly once for a successful construction. When
// construction fails nothing is cached and the error is returned to every
// caller in the flight.
func (r *Registry) GetOrCreate(ctx context.Context, identity Identity) (*Handle, error) {
	r.mu.RLock()
	h, ok := r.handles[identity]
	r.mu.RUnlock()
	if ok {
		return h, nil
	}

	v, err, _ := r.group.Do(flightKey(identity), func() (interface{}, error) {
		// Re-check under the flight: a previous flight may have published
		// between our read miss and now.
		r.mu.RLock()
		h, ok := r.handles[identity]
		r.mu.RUnlock()
		if ok {
			return h, nil
		}

		candidate := NewHandle(identity, r.source, r.decoder, r.threshold)
		if err := candidate.Load(ctx); err != nil {
			logging.Warnf("Handle construction failed: model=%s err=%v", identity.Name, err)
			return nil, err
		}

		r.mu.Lock()
		r.handles[identity] = candidate
		r.mu.Unlock()
		return candidate, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle), nil
}

// flightKey encodes an identity unambiguously for construction deduplication.
// Identity.String is for logs and can collide: {Name:"a@b"} and
// {Name:"a", DeviceHint:"b"} both render as "a@b".
func flightKey(id Identity) string {
	return fmt.Sprintf("%q@%q", id.Name, id.DeviceHint)
}

// Get returns the handle for identity if one has been published.
func (r *Registry) Get(identity Identity) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[identity]
	return h, ok
}

// Reset discards the current handle for identity, unloading it first. A
// subsequent GetOrCreate constructs a fresh instance. Callers that cache
// predictions should clear them alongside, since a reloaded model is a new
// generation.
func (r *Registry) Reset(identity Identity) {
	r.mu.Lock()
	h, ok := r.handles[identity]
	if ok {
		delete(r.handles, identity)
	}
	r.mu.Unlock()

	if ok {
		h.Unload()
		logging.Infof("Handle reset: model=%s", identity.Name)
	}
}

// ResetAll discards every handle. Used on shutdown and in tests.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[Identity]*Handle)
	r.mu.Unlock()

	for _, h := range handles {
		h.Unload()
	}
}
