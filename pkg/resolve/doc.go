// Package resolve is the metadata-resolution capability: the resolver-native
// data model, the [Client] interface callers program against, and its
// implementations.
//
// [HTTPClient] talks to Maven and Ivy repositories through
// pkg/integrations. [CachedClient] puts a [cache.Store] in front of any
// Client under a freshness [cache.Policy]:
//
//	http := resolve.NewHTTPClient(integrations.NewClient(integrations.Options{}))
//	store, _ := cache.NewFileStore(dir)
//	normal := resolve.NewCachedClient(http, store, cache.Default(6*time.Hour), nil)
//	fresh := resolve.NewCachedClient(http, store, cache.NoTTL, nil)
//
// [cache.Store]: github.com/matzehuels/artifactscout/pkg/cache.Store
// [cache.Policy]: github.com/matzehuels/artifactscout/pkg/cache.Policy
package resolve
