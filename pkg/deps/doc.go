// Package deps defines the caller-side model of dependencies and the
// repositories they are resolved against.
//
// # Overview
//
// A [Coordinate] identifies one published library unit by group, artifact
// and version. Artifacts may be cross-built (e.g., Scala libraries published
// as "cats-core_2.13"); [ArtifactID] keeps both the short name and the
// published cross name.
//
// A [Resolver] is one configured repository, either a [MavenRepository]
// (flat Maven 2 layout under a root URL) or an [IvyRepository] (an Ivy
// pattern string). Patterns are not parsed here; translation into
// resolver-native repositories happens in package lookup, which reports and
// drops malformed patterns.
//
// # Scoping
//
// [ScopedDependency] pairs a coordinate with the resolvers to consult.
// [ScopedDependencies] shares one resolver list between many coordinates:
//
//	scoped := deps.ScopedDependencies{
//	    Dependencies: []deps.Coordinate{
//	        deps.NewCoordinate("org.typelevel", "cats-core", "2.10.0"),
//	        deps.NewCoordinate("co.fs2", "fs2-core", "3.9.3"),
//	    },
//	    Resolvers: []deps.Resolver{deps.MavenCentral},
//	}
//	for _, d := range scoped.Each() {
//	    // ...
//	}
//
// # Immutability
//
// Coordinates are values. Helpers that derive a new coordinate
// ([Coordinate.WithVersion], [Coordinate.WithAttributes]) copy the attribute
// map, so the original is never shared or modified.
package deps
