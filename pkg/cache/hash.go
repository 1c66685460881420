package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds store keys for cached metadata. Keys identify the query, not
// the policy: both freshness policies read and write the same key.
type Keyer interface {
	// VersionsKey is the key for the version listing of module across repos.
	VersionsKey(module string, repos []string) string

	// DescriptorKey is the key for the descriptor fetch of module at version
	// across repos, restricted to the given artifact types.
	DescriptorKey(module, version string, repos, types []string) string
}

// DefaultKeyer hashes all key components into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) VersionsKey(module string, repos []string) string {
	return hashKey("versions", module, repos)
}

func (DefaultKeyer) DescriptorKey(module, version string, repos, types []string) string {
	return hashKey("descriptor", module, version, repos, types)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
