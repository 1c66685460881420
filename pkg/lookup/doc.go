// Package lookup answers two questions about a dependency: which versions
// are published, and where its project lives.
//
// A [Service] is built from a resolve.Client, a cache.Store and a [Config]:
//
//	svc := lookup.New(client, store, lookup.Config{CacheTTL: 6 * time.Hour, Logger: logger})
//	versions := svc.Versions(ctx, deps.Scope(coord, deps.MavenCentral))
//	u, ok := svc.ArtifactURL(ctx, deps.Scope(coord, deps.MavenCentral))
//
// None of the operations return errors. A repository that cannot be
// translated (a malformed Ivy pattern) is logged at error level and
// skipped; a fetch that fails is logged at debug level and treated as
// "nothing found". Callers cannot tell "not published" from "could not
// ask", which is what a scan over many dependencies wants: one bad
// repository never stops the batch.
//
// Versions and ArtifactURL read through the store under the default TTL;
// VersionsFresh always asks the repositories and writes the answer back,
// so a later Versions call is served from it.
package lookup
