package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/artifactscout/pkg/cache"
	"github.com/matzehuels/artifactscout/pkg/observability"
)

// Cache entry kinds reported to the cache hooks.
const (
	kindVersions   = "versions"
	kindDescriptor = "descriptor"
)

// CachedClient is a read-through cache in front of another Client.
//
// Several CachedClients with different policies may share one store; they
// compute the same keys, so whatever one of them writes the others can read.
// Concurrent misses for the same key are collapsed into one inner call.
// Failed calls are not cached, and neither are partial version listings.
type CachedClient struct {
	inner  Client
	store  cache.Store
	policy cache.Policy
	keyer  cache.Keyer
	group  singleflight.Group
}

// NewCachedClient wraps inner. A nil keyer uses [cache.NewDefaultKeyer].
func NewCachedClient(inner Client, store cache.Store, policy cache.Policy, keyer cache.Keyer) *CachedClient {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachedClient{inner: inner, store: store, policy: policy, keyer: keyer}
}

// Policy returns the freshness policy this client reads with.
func (c *CachedClient) Policy() cache.Policy { return c.policy }

func (c *CachedClient) ListVersions(ctx context.Context, m Module, repos []Repository) ([]string, error) {
	key := c.keyer.VersionsKey(m.String(), RepositoryIDs(repos))

	var versions []string
	if c.lookup(ctx, key, kindVersions, &versions) {
		return versions, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		vs, err := c.inner.ListVersions(ctx, m, repos)
		if err != nil {
			return vs, err
		}
		c.save(ctx, key, kindVersions, vs)
		return vs, nil
	})
	if err != nil && !errors.Is(err, ErrPartial) {
		return nil, err
	}
	vs, _ := v.([]string)
	return slices.Clone(vs), err
}

func (c *CachedClient) Fetch(ctx context.Context, req FetchRequest) (*Resolution, error) {
	key := c.descriptorKey(req)

	var res Resolution
	if c.lookup(ctx, key, kindDescriptor, &res) {
		return &res, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		r, err := c.inner.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		c.save(ctx, key, kindDescriptor, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Resolution), nil
}

func (c *CachedClient) descriptorKey(req FetchRequest) string {
	modules := make([]string, len(req.Dependencies))
	versions := make([]string, len(req.Dependencies))
	for i, d := range req.Dependencies {
		modules[i] = d.Module.String()
		if d.Transitive {
			modules[i] += "+transitive"
		}
		versions[i] = d.Version
	}
	types := make([]string, len(req.ArtifactTypes))
	for i, t := range req.ArtifactTypes {
		types[i] = string(t)
	}
	return c.keyer.DescriptorKey(strings.Join(modules, ","), strings.Join(versions, ","), RepositoryIDs(req.Repositories), types)
}

// lookup decodes a fresh entry into v. Store errors and undecodable
// entries count as misses.
func (c *CachedClient) lookup(ctx context.Context, key, kind string, v any) bool {
	hooks := observability.Cache()
	data, ok, err := c.policy.Lookup(ctx, c.store, key)
	if err != nil || !ok || json.Unmarshal(data, v) != nil {
		hooks.OnCacheMiss(ctx, c.policy.Name, kind)
		return false
	}
	hooks.OnCacheHit(ctx, c.policy.Name, kind)
	return true
}

// save writes v back. A failed write only costs a later refetch.
func (c *CachedClient) save(ctx context.Context, key, kind string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := cache.Save(ctx, c.store, key, data); err != nil {
		return
	}
	observability.Cache().OnCacheSet(ctx, c.policy.Name, kind, len(data))
}

var _ Client = (*CachedClient)(nil)
