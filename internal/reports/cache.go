package reports

import (
	"sync"
	"time"
)

type cacheEntry struct {
	report   Report
	storedAt time.Time
}

// resultCache holds completed reports keyed by request fingerprint.
// Entries expire after a fixed TTL and are evicted lazily on lookup;
// failed pipelines are never stored.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]cacheEntry
	now     func() time.Time
}

func newResultCache(ttl time.Duration, max int) *resultCache {
	return &resultCache{
		ttl:     ttl,
		max:     max,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached report for fingerprint if present and fresh.
// Expired entries encountered during the lookup are removed.
func (c *resultCache) Get(fingerprint string) (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entry, ok := c.entries[fingerprint]
	if !ok {
		return Report{}, false
	}
	if now.Sub(entry.storedAt) > c.ttl {
		delete(c.entries, fingerprint)
		return Report{}, false
	}
	return entry.report, true
}

// Put stores a completed report, evicting expired entries and, if the cache
// is still full, the oldest entry.
func (c *resultCache) Put(fingerprint string, report Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
	if c.max > 0 && len(c.entries) >= c.max {
		if _, exists := c.entries[fingerprint]; !exists {
			c.evictOldestLocked()
		}
	}
	c.entries[fingerprint] = cacheEntry{report: report, storedAt: now}
}

func (c *resultCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
