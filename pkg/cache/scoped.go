package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments (or
// several sets of credentials) can share one Redis or Mongo backend without
// reading each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "ci:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// VersionsKey generates a prefixed key for version listings.
func (k *ScopedKeyer) VersionsKey(module string, repos []string) string {
	return k.prefix + k.inner.VersionsKey(module, repos)
}

// DescriptorKey generates a prefixed key for descriptor fetches.
func (k *ScopedKeyer) DescriptorKey(module, version string, repos, types []string) string {
	return k.prefix + k.inner.DescriptorKey(module, version, repos, types)
}
