// Package cache stores remote repository metadata.
//
// A [Store] is a plain byte store shared by every cached client in the
// process. Freshness is not decided by the store: each entry carries the
// time it was fetched ([Entry]), and a [Policy] decides on read whether that
// entry is still usable. This is what lets a normal lookup and a forced-fresh
// lookup share one store: the fresh path never accepts a stored entry but
// its results are written back where the normal path will find them.
//
// Backends:
//   - [FileStore]: JSON files under a directory (CLI default)
//   - [MemoryStore]: in-process map
//   - [RedisStore]: Redis via go-redis
//   - [MongoStore]: MongoDB collection
//   - [NullStore]: stores nothing
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrCorrupt is returned by [DecodeEntry] for data that is not an encoded entry.
var ErrCorrupt = errors.New("corrupt cache entry")

// Store is a byte-oriented key/value store.
//
// Get returns (nil, false, nil) for a missing key. retention passed to Set is
// how long the backend keeps the entry at all; 0 keeps it until deleted.
// Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, retention time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry is a cached payload and the time it was fetched from the remote.
type Entry struct {
	Data      []byte    `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Encode serializes the entry for storage.
func (e Entry) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEntry parses data written by [Entry.Encode].
func DecodeEntry(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil || e.FetchedAt.IsZero() {
		return Entry{}, ErrCorrupt
	}
	return e, nil
}

// Policy names a freshness rule.
type Policy struct {
	Name string
	TTL  time.Duration // 0: every entry is stale
}

const (
	DefaultPolicyName = "default"
	NoTTLPolicyName   = "no-ttl"
)

// Default returns the normal policy with the configured TTL.
func Default(ttl time.Duration) Policy {
	return Policy{Name: DefaultPolicyName, TTL: ttl}
}

// NoTTL is the forced-fresh policy: nothing stored is ever fresh, so every
// read goes to the remote.
var NoTTL = Policy{Name: NoTTLPolicyName}

// Fresh reports whether e may be served under p at time now.
func (p Policy) Fresh(e Entry, now time.Time) bool {
	return p.TTL > 0 && now.Sub(e.FetchedAt) < p.TTL
}

// Lookup reads key from s and returns the payload if a fresh entry exists.
// Corrupt entries are removed and reported as a miss.
func (p Policy) Lookup(ctx context.Context, s Store, key string) ([]byte, bool, error) {
	if p.TTL <= 0 {
		return nil, false, nil
	}
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	e, err := DecodeEntry(raw)
	if err != nil {
		_ = s.Delete(ctx, key)
		return nil, false, nil
	}
	if !p.Fresh(e, time.Now()) {
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Save writes data under key stamped with the current time. Entries are
// retained indefinitely; staleness is decided by the reading policy.
func Save(ctx context.Context, s Store, key string, data []byte) error {
	raw, err := Entry{Data: data, FetchedAt: time.Now()}.Encode()
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw, 0)
}
