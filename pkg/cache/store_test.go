package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v; want miss", ok, err)
	}

	if err := s.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(data) != "value" {
		t.Fatalf("Get(k) = %q, %v, %v", data, ok, err)
	}

	// Last write wins.
	if err := s.Set(ctx, "k", []byte("newer"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if data, _, _ := s.Get(ctx, "k"); string(data) != "newer" {
		t.Errorf("Get(k) after overwrite = %q", data)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("Get after Delete should miss")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileStore_Retention(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	if err := s.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	// Negative retention is treated as "forever".
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Error("entry with non-positive retention should be kept")
	}

	if err := s.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, ok, _ := s.Get(ctx, "short"); ok {
		t.Error("entry past retention should miss")
	}
}

func TestFileStore_CorruptAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	path := s.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := s.Get(ctx, "bad"); ok || err != nil {
		t.Errorf("corrupt file: ok=%v err=%v", ok, err)
	}

	_ = s.Set(ctx, "a", []byte("1"), 0)
	_ = s.Set(ctx, "b", []byte("2"), 0)
	n, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() removed %d entries, want 2", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Clear() left %d entries", len(entries))
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", s.Dir(), dir)
	}
}

func TestFileStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "shared", []byte("payload"), 0)
		}()
	}
	wg.Wait()

	data, ok, err := s.Get(ctx, "shared")
	if err != nil || !ok || string(data) != "payload" {
		t.Errorf("Get(shared) = %q, %v, %v", data, ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	ctx := context.Background()
	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf, 0)
	buf[0] = 'x'
	if data, _, _ := s.Get(ctx, "k"); string(data) != "abc" {
		t.Errorf("MemoryStore should copy on Set, got %q", data)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStore(ctx, mr.Addr(), "test:")
	if err != nil {
		t.Fatalf("NewRedisStore() error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	// Keys are namespaced.
	_ = s.Set(ctx, "k", []byte("v"), 0)
	if !mr.Exists("test:k") {
		t.Error("expected key test:k in redis")
	}

	// Retention maps to a key expiry.
	_ = s.Set(ctx, "ttl", []byte("v"), time.Minute)
	mr.FastForward(2 * time.Minute)
	if _, ok, _ := s.Get(ctx, "ttl"); ok {
		t.Error("expired redis key should miss")
	}
}

func TestRedisStore_URL(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), "redis://"+mr.Addr()+"/0", "")
	if err != nil {
		t.Fatalf("NewRedisStore(url) error: %v", err)
	}
	s.Close()
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), addr, ""); err == nil {
		t.Error("NewRedisStore() should fail when redis is down")
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("ARTIFACTSCOUT_MONGO_URI")
	if uri == "" {
		t.Skip("ARTIFACTSCOUT_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "artifactscout_test")
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}
