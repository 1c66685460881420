// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about lookups, metadata cache operations, and repository
// HTTP calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [Counters] is a ready-made implementation that keeps in-memory totals;
// the HTTP API exposes them under /v1/stats.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    counters := observability.NewCounters()
//	    observability.SetLookupHooks(counters)
//	    observability.SetCacheHooks(counters)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Lookup().OnVersions(ctx, coord, len(versions), duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Lookup Hooks
// =============================================================================

// LookupHooks receives events from the public lookup operations.
// The coordinate is passed in its "group:artifact:version" form.
type LookupHooks interface {
	// OnVersions records a version listing. count is 0 when nothing was found
	// or the fetch failed.
	OnVersions(ctx context.Context, coordinate string, fresh bool, count int, duration time.Duration)

	// OnArtifactURL records a URL resolution. depth is the number of parent
	// records consulted (0 when the URL came from the coordinate itself).
	OnArtifactURL(ctx context.Context, coordinate string, found bool, depth int, duration time.Duration)

	// OnFetchError records a swallowed remote failure.
	OnFetchError(ctx context.Context, op, coordinate string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from metadata cache operations.
// policy is the freshness policy name ("default", "no-ttl").
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, policy, kind string)

	// OnCacheMiss records a cache miss (absent or stale under the policy).
	OnCacheMiss(ctx context.Context, policy, kind string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, policy, kind string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout, open circuit).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLookupHooks is a no-op implementation of LookupHooks.
type NoopLookupHooks struct{}

func (NoopLookupHooks) OnVersions(context.Context, string, bool, int, time.Duration)    {}
func (NoopLookupHooks) OnArtifactURL(context.Context, string, bool, int, time.Duration) {}
func (NoopLookupHooks) OnFetchError(context.Context, string, string, error)             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	lookupHooks LookupHooks = NoopLookupHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetLookupHooks registers custom lookup hooks.
// This should be called once at application startup before any lookups.
func SetLookupHooks(h LookupHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		lookupHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Lookup returns the registered lookup hooks.
func Lookup() LookupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lookupHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	lookupHooks = NoopLookupHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
