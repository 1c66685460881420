package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Lookup hooks
	l := NoopLookupHooks{}
	l.OnVersions(ctx, "org.example:lib", false, 3, time.Second)
	l.OnArtifactURL(ctx, "org.example:lib:1.0", true, 2, time.Second)
	l.OnFetchError(ctx, "versions", "org.example:lib", nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "default", "versions")
	c.OnCacheMiss(ctx, "no-ttl", "project")
	c.OnCacheSet(ctx, "default", "project", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "repo1.maven.org", "/maven2/org/example/lib/maven-metadata.xml")
	h.OnResponse(ctx, "GET", "repo1.maven.org", "/maven2/org/example/lib/maven-metadata.xml", 200, time.Second)
	h.OnError(ctx, "GET", "repo1.maven.org", "/maven2/org/example/lib/maven-metadata.xml", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Lookup().(NoopLookupHooks); !ok {
		t.Error("Lookup() should return NoopLookupHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	counters := NewCounters()
	SetLookupHooks(counters)
	if Lookup() != counters {
		t.Error("SetLookupHooks should set custom hooks")
	}
	SetCacheHooks(counters)
	if Cache() != counters {
		t.Error("SetCacheHooks should set custom hooks")
	}
	SetHTTPHooks(counters)
	if HTTP() != counters {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Lookup().(NoopLookupHooks); !ok {
		t.Error("Reset() should restore NoopLookupHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	counters := NewCounters()
	SetLookupHooks(counters)
	SetLookupHooks(nil)
	if Lookup() != counters {
		t.Error("SetLookupHooks(nil) should be ignored")
	}

	SetCacheHooks(counters)
	SetCacheHooks(nil)
	if Cache() != counters {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnVersions(ctx, "a:b", false, 2, 0)
	c.OnVersions(ctx, "a:b", true, 0, 0)
	c.OnVersions(ctx, "a:b", false, 1, 0)
	c.OnArtifactURL(ctx, "a:b:1", true, 0, 0)
	c.OnArtifactURL(ctx, "a:c:1", false, 3, 0)
	c.OnFetchError(ctx, "versions", "a:b", errors.New("boom"))
	c.OnCacheHit(ctx, "default", "versions")
	c.OnCacheMiss(ctx, "no-ttl", "versions")
	c.OnCacheMiss(ctx, "no-ttl", "project")
	c.OnCacheSet(ctx, "no-ttl", "versions", 10)
	c.OnRequest(ctx, "GET", "h", "/p")
	c.OnError(ctx, "GET", "h", "/p", errors.New("refused"))

	s := c.Snapshot()
	if s.Versions != 2 || s.VersionsFresh != 1 {
		t.Errorf("versions = %d/%d, want 2/1", s.Versions, s.VersionsFresh)
	}
	if s.URLLookups != 2 || s.URLsFound != 1 {
		t.Errorf("urls = %d/%d, want 2/1", s.URLLookups, s.URLsFound)
	}
	if s.FetchErrors["versions"] != 1 {
		t.Errorf("FetchErrors = %v", s.FetchErrors)
	}
	if s.CacheHits["default"] != 1 || s.CacheMisses["no-ttl"] != 2 || s.CacheWrites != 1 {
		t.Errorf("cache = %v %v %d", s.CacheHits, s.CacheMisses, s.CacheWrites)
	}
	if s.HTTPRequests != 1 || s.HTTPErrors != 1 {
		t.Errorf("http = %d/%d", s.HTTPRequests, s.HTTPErrors)
	}

	// Snapshots are copies.
	s.CacheHits["default"] = 99
	if c.Snapshot().CacheHits["default"] != 1 {
		t.Error("Snapshot() should not share maps with the counters")
	}
}

func TestCounters_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnCacheHit(ctx, "default", "project")
			c.OnArtifactURL(ctx, "a:b:1", true, 1, 0)
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	if s.CacheHits["default"] != 50 || s.URLsFound != 50 {
		t.Errorf("got hits=%d found=%d, want 50/50", s.CacheHits["default"], s.URLsFound)
	}
}
