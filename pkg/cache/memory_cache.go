package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/model"
	"github.com/CodeWithSiya/Detective-AI-sub000/pkg/observability"
)

const memoryBackendName = "memory"

// MemoryScoreCache is a bounded in-memory ScoreCache with least-recently-used
// eviction. A hash map indexes into a doubly-linked recency list; both are
// guarded by one mutex held only for the duration of a single operation,
// never across model inference.
type MemoryScoreCache struct {
	mu         sync.Mutex
	entries    map[Fingerprint]*list.Element
	order      *list.List // front = most recently used
	maxEntries int

	hits   uint64
	misses uint64
}

type memoryEntry struct {
	fp    Fingerprint
	score model.Score
}

// NewMemoryScoreCache creates a cache bounded to maxEntries.
func NewMemoryScoreCache(maxEntries int) *MemoryScoreCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &MemoryScoreCache{
		entries:    make(map[Fingerprint]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

func (c *MemoryScoreCache) Get(ctx context.Context, fp Fingerprint) (model.Score, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[fp]
	if !ok {
		c.misses++
		observability.CacheMisses.WithLabelValues(memoryBackendName).Inc()
		return model.Score{}, false, nil
	}

	c.order.MoveToFront(elem)
	c.hits++
	observability.CacheHits.WithLabelValues(memoryBackendName).Inc()
	return elem.Value.(*memoryEntry).score, true, nil
}

func (c *MemoryScoreCache) Put(ctx context.Context, fp Fingerprint, score model.Score) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[fp]; ok {
		// Scores are pure functions of the input; a repeat Put refreshes
		// recency and keeps the stored value.
		c.order.MoveToFront(elem)
		return nil
	}

	if len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	elem := c.order.PushFront(&memoryEntry{fp: fp, score: score})
	c.entries[fp] = elem
	observability.CacheEntries.WithLabelValues(memoryBackendName).Set(float64(len(c.entries)))
	return nil
}

// evictOldest removes the least-recently-used entry. Caller holds c.mu.
func (c *MemoryScoreCache) evictOldest() {
	back := c.order.Back()
	if back == nil {
		return
	}
	c.order.Remove(back)
	delete(c.entries, back.Value.(*memoryEntry).fp)
}

func (c *MemoryScoreCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Fingerprint]*list.Element)
	c.order.Init()
	observability.CacheEntries.WithLabelValues(memoryBackendName).Set(0)
	return nil
}

// ResetStats zeroes the hit/miss counters without touching entries.
func (c *MemoryScoreCache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits = 0
	c.misses = 0
}

func (c *MemoryScoreCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		CurrentSize: len(c.entries),
		MaxSize:     c.maxEntries,
	}
}

func (c *MemoryScoreCache) Close() error {
	return nil
}
