package deps

import (
	"strings"

	apperr "github.com/matzehuels/artifactscout/pkg/errors"
)

// ParseCoordinate parses "groupId:artifactId" or "groupId:artifactId:version".
//
// Since colons are not allowed in some file names and shells, underscores can
// stand in for the separator between group and artifact when no colon is
// present ("com.google.guava_guava" is read as "com.google.guava:guava").
// The returned coordinate has no cross-build name and no attributes.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		if idx := strings.LastIndex(s, "_"); idx != -1 {
			s = s[:idx] + ":" + s[idx+1:]
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, apperr.New(apperr.ErrCodeInvalidCoordinate, "invalid coordinate %q (expected groupId:artifactId[:version])", s)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, apperr.New(apperr.ErrCodeInvalidCoordinate, "invalid coordinate %q: empty component", s)
		}
	}

	c := NewCoordinate(parts[0], parts[1], "")
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}

// ParseAttributes parses "key=value" pairs into an attribute map.
// Keys must be unique; a repeated key is an error.
func ParseAttributes(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "invalid attribute %q (expected key=value)", p)
		}
		if _, dup := attrs[k]; dup {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "duplicate attribute %q", k)
		}
		attrs[k] = strings.TrimSpace(v)
	}
	return attrs, nil
}

// Validate checks that every part of c is safe to place in repository URLs
// and cache keys. The version may be empty.
func (c Coordinate) Validate() error {
	if err := apperr.ValidateGroupID(c.GroupID); err != nil {
		return err
	}
	if err := apperr.ValidateCoordinatePart("artifact", c.ArtifactID.Resolved()); err != nil {
		return err
	}
	if c.Version != "" {
		if err := apperr.ValidateCoordinatePart("version", c.Version); err != nil {
			return err
		}
	}
	return nil
}

// WithCrossSuffix returns a copy of c whose cross-build name is the short
// name followed by suffix (e.g., "_2.13"). An empty suffix clears it.
func (c Coordinate) WithCrossSuffix(suffix string) Coordinate {
	c.Attributes = c.AttributesCopy()
	c.ArtifactID.CrossName = ""
	if suffix != "" {
		c.ArtifactID.CrossName = c.ArtifactID.Name + suffix
	}
	return c
}

// ParseQualified parses s like ParseCoordinate, applies the cross-build
// suffix and "key=value" attributes, and validates the result. With
// requireVersion set, a coordinate without version is rejected.
func ParseQualified(s, crossSuffix string, attrs []string, requireVersion bool) (Coordinate, error) {
	c, err := ParseCoordinate(s)
	if err != nil {
		return Coordinate{}, err
	}
	if requireVersion && c.Version == "" {
		return Coordinate{}, apperr.New(apperr.ErrCodeInvalidCoordinate, "%s: version is required", s)
	}
	a, err := ParseAttributes(attrs)
	if err != nil {
		return Coordinate{}, err
	}
	c = c.WithCrossSuffix(crossSuffix).WithAttributes(a)
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}
