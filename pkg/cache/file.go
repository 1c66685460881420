package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore implements a file-based store for CLI usage.
// Entries are stored as files in a directory with retention metadata.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's root directory.
func (c *FileStore) Dir() string { return c.dir }

// fileRecord wraps stored data with its retention deadline.
type fileRecord struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the store.
func (c *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Invalid record - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return rec.Data, true, nil
}

// Set stores a value. The record is written to a temporary file and renamed
// into place so concurrent readers never observe a partial write.
func (c *FileStore) Set(ctx context.Context, key string, data []byte, retention time.Duration) error {
	rec := fileRecord{Data: data}
	if retention > 0 {
		rec.ExpiresAt = time.Now().Add(retention)
	}

	recData, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(recData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the store.
func (c *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry below the store directory and reports how many
// entries were removed.
func (c *FileStore) Clear() (int, error) {
	count := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".json" {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// Close does nothing for the file store.
func (c *FileStore) Close() error {
	return nil
}

// path converts a key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".json"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
