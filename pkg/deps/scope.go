package deps

// ScopedDependency pairs a dependency with the resolvers that should be
// consulted for it. All resolvers go into a single resolution call, so a
// miss in one of them is invisible to the caller.
type ScopedDependency struct {
	Dependency Coordinate
	Resolvers  []Resolver
}

// Scope wraps a single coordinate with resolvers.
func Scope(c Coordinate, resolvers ...Resolver) ScopedDependency {
	return ScopedDependency{Dependency: c, Resolvers: resolvers}
}

// ScopedDependencies is an ordered list of dependencies sharing one set of
// resolvers.
type ScopedDependencies struct {
	Dependencies []Coordinate
	Resolvers    []Resolver
}

// Each splits d into one ScopedDependency per dependency, preserving order.
// The resolver slice is shared, not copied; resolvers are read-only.
func (d ScopedDependencies) Each() []ScopedDependency {
	out := make([]ScopedDependency, len(d.Dependencies))
	for i, c := range d.Dependencies {
		out[i] = ScopedDependency{Dependency: c, Resolvers: d.Resolvers}
	}
	return out
}
