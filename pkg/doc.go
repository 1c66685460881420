// Package pkg provides the libraries behind artifactscout, which answers two
// questions about JVM artifacts published to Maven and Ivy repositories:
// which versions exist, and where the project lives (its source control or
// homepage URL).
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [lookup] - The public operations (versions, URL, batch URL mapping)
//  2. [deps] - Coordinates and repository descriptions as callers write them
//  3. [resolve] - Resolver-native types and the capability that talks to repositories
//  4. [integrations] - Shared HTTP client plus the [integrations/maven] and [integrations/ivy] layouts
//  5. [cache] - Metadata stores (file, memory, Redis, MongoDB) and freshness policies
//  6. [version] - Version ordering
//
// # Architecture
//
// The data flow of a lookup:
//
//	deps.ScopedDependency
//	         ↓
//	    [lookup] (translate coordinates and repositories)
//	         ↓
//	    [resolve.CachedClient] (policy-checked read-through cache)
//	         ↓
//	    [resolve.HTTPClient] (maven-metadata.xml, POMs, ivy.xml)
//	         ↓
//	    versions / project records → sorted versions, selected URL
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/artifactscout/pkg/cache"
//	    "github.com/matzehuels/artifactscout/pkg/deps"
//	    "github.com/matzehuels/artifactscout/pkg/integrations"
//	    "github.com/matzehuels/artifactscout/pkg/lookup"
//	    "github.com/matzehuels/artifactscout/pkg/resolve"
//	)
//
//	client := resolve.NewHTTPClient(integrations.NewClient(integrations.Options{}))
//	svc := lookup.New(client, cache.NewMemoryStore(), lookup.Config{})
//
//	dep := deps.Scope(deps.NewCoordinate("com.google.guava", "guava", "32.1.3-jre"), deps.MavenCentral)
//	versions := svc.Versions(ctx, dep)
//	if u, ok := svc.ArtifactURL(ctx, dep); ok {
//	    fmt.Println(u)
//	}
//
// Lookups never fail: repository errors are logged at debug level and
// degrade to an empty version list or an absent URL.
//
// # Observability
//
// The [observability] package exposes hooks for lookups, cache hits and
// misses, and repository HTTP calls. [observability.Counters] keeps in-memory
// totals that the HTTP API serves under /v1/stats.
//
// [lookup]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/lookup
// [deps]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/deps
// [resolve]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/resolve
// [resolve.CachedClient]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/resolve#CachedClient
// [resolve.HTTPClient]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/resolve#HTTPClient
// [integrations]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/integrations
// [integrations/maven]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/integrations/maven
// [integrations/ivy]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/integrations/ivy
// [cache]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/cache
// [version]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/version
// [observability]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/observability
// [observability.Counters]: https://pkg.go.dev/github.com/matzehuels/artifactscout/pkg/observability#Counters
package pkg
