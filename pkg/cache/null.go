package cache

import (
	"context"
	"time"
)

// NullStore is a no-op store that never keeps anything.
// Used when caching is disabled (--no-cache, cache_backend = "none").
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return NullStore{}
}

// Get always returns a miss.
func (NullStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (NullStore) Set(ctx context.Context, key string, data []byte, retention time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = NullStore{}
