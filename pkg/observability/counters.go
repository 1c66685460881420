package observability

import (
	"context"
	"sync"
	"time"
)

// Stats is a snapshot of [Counters].
type Stats struct {
	Versions      int64            `json:"versions"`
	VersionsFresh int64            `json:"versions_fresh"`
	URLLookups    int64            `json:"url_lookups"`
	URLsFound     int64            `json:"urls_found"`
	FetchErrors   map[string]int64 `json:"fetch_errors,omitempty"` // by operation
	CacheHits     map[string]int64 `json:"cache_hits,omitempty"`   // by policy
	CacheMisses   map[string]int64 `json:"cache_misses,omitempty"` // by policy
	CacheWrites   int64            `json:"cache_writes"`
	HTTPRequests  int64            `json:"http_requests"`
	HTTPErrors    int64            `json:"http_errors"`
}

// Counters implements LookupHooks, CacheHooks and HTTPHooks by counting
// events in memory. It is safe for concurrent use.
type Counters struct {
	mu    sync.Mutex
	stats Stats
}

// NewCounters creates an empty set of counters.
func NewCounters() *Counters {
	return &Counters{stats: Stats{
		FetchErrors: map[string]int64{},
		CacheHits:   map[string]int64{},
		CacheMisses: map[string]int64{},
	}}
}

// Snapshot returns a copy of the current totals.
func (c *Counters) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.FetchErrors = copyCounts(c.stats.FetchErrors)
	s.CacheHits = copyCounts(c.stats.CacheHits)
	s.CacheMisses = copyCounts(c.stats.CacheMisses)
	return s
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (c *Counters) OnVersions(_ context.Context, _ string, fresh bool, _ int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fresh {
		c.stats.VersionsFresh++
	} else {
		c.stats.Versions++
	}
}

func (c *Counters) OnArtifactURL(_ context.Context, _ string, found bool, _ int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.URLLookups++
	if found {
		c.stats.URLsFound++
	}
}

func (c *Counters) OnFetchError(_ context.Context, op, _ string, _ error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.FetchErrors[op]++
}

func (c *Counters) OnCacheHit(_ context.Context, policy, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.CacheHits[policy]++
}

func (c *Counters) OnCacheMiss(_ context.Context, policy, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.CacheMisses[policy]++
}

func (c *Counters) OnCacheSet(context.Context, string, string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.CacheWrites++
}

func (c *Counters) OnRequest(context.Context, string, string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.HTTPRequests++
}

func (c *Counters) OnResponse(context.Context, string, string, string, int, time.Duration) {}

func (c *Counters) OnError(context.Context, string, string, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.HTTPErrors++
}

var (
	_ LookupHooks = (*Counters)(nil)
	_ CacheHooks  = (*Counters)(nil)
	_ HTTPHooks   = (*Counters)(nil)
)
