package deps

import (
	"maps"
	"sort"
	"strings"

	packageurl "github.com/package-url/packageurl-go"
)

// ArtifactID names an artifact within a group.
//
// Name is the short name used to identify the artifact to users (e.g., "cats-core").
// CrossName is the cross-build qualified name actually published in the
// repository (e.g., "cats-core_2.13"); it is empty when the artifact is not
// cross-built.
type ArtifactID struct {
	Name      string // Short artifact name (never empty in valid coordinates)
	CrossName string // Cross-build name, empty if not cross-built
}

// Resolved returns the name that is looked up in repositories:
// CrossName when set, Name otherwise.
func (a ArtifactID) Resolved() string {
	if a.CrossName != "" {
		return a.CrossName
	}
	return a.Name
}

// String returns the resolved name.
func (a ArtifactID) String() string { return a.Resolved() }

// Coordinate identifies one published library unit.
//
// A Coordinate is a value: it is passed by value and never mutated after
// construction. The Attributes map is owned by whoever built the Coordinate;
// code that hands attributes to other components copies them first (see
// [Coordinate.AttributesCopy]).
type Coordinate struct {
	GroupID    string            // Maven groupId / Ivy organisation
	ArtifactID ArtifactID        // Artifact name with optional cross-build name
	Version    string            // Version string, may be empty when listing versions
	Attributes map[string]string // Extra attributes (e.g., sbtVersion, scalaVersion)
}

// NewCoordinate creates a Coordinate without cross-build name or attributes.
func NewCoordinate(groupID, artifactID, version string) Coordinate {
	return Coordinate{
		GroupID:    groupID,
		ArtifactID: ArtifactID{Name: artifactID},
		Version:    version,
	}
}

// WithAttributes returns a copy of c with attrs merged over its own
// attributes. c itself is left untouched.
func (c Coordinate) WithAttributes(attrs map[string]string) Coordinate {
	merged := c.AttributesCopy()
	if merged == nil && len(attrs) > 0 {
		merged = make(map[string]string, len(attrs))
	}
	maps.Copy(merged, attrs)
	c.Attributes = merged
	return c
}

// WithVersion returns a copy of c with the version replaced.
func (c Coordinate) WithVersion(v string) Coordinate {
	c.Attributes = c.AttributesCopy()
	c.Version = v
	return c
}

// AttributesCopy returns a copy of the attribute map, or nil if there are none.
func (c Coordinate) AttributesCopy() map[string]string {
	if len(c.Attributes) == 0 {
		return nil
	}
	return maps.Clone(c.Attributes)
}

// Module returns "groupId:artifactId" using the resolved artifact name.
func (c Coordinate) Module() string {
	return c.GroupID + ":" + c.ArtifactID.Resolved()
}

// String returns "groupId:artifactId:version", or "groupId:artifactId" when
// the version is empty.
func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Module()
	}
	return c.Module() + ":" + c.Version
}

// PURL renders the coordinate as a package URL
// (e.g., "pkg:maven/org.typelevel/cats-core_2.13@2.10.0"). Attributes become
// qualifiers in key order.
func (c Coordinate) PURL() string {
	var qualifiers packageurl.Qualifiers
	if len(c.Attributes) > 0 {
		keys := make([]string, 0, len(c.Attributes))
		for k := range c.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			qualifiers = append(qualifiers, packageurl.Qualifier{Key: strings.ToLower(k), Value: c.Attributes[k]})
		}
	}
	p := packageurl.NewPackageURL(packageurl.TypeMaven, c.GroupID, c.ArtifactID.Resolved(), c.Version, qualifiers, "")
	return p.ToString()
}
