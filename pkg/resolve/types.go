package resolve

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/artifactscout/pkg/integrations"
	"github.com/matzehuels/artifactscout/pkg/integrations/ivy"
)

// Module identifies a module independent of version.
type Module struct {
	Organization string            `json:"organization"`
	Name         string            `json:"name"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// String renders "org:name", followed by ";k=v" for each attribute in key
// order. The rendering is stable and is used in cache keys.
func (m Module) String() string {
	var b strings.Builder
	b.WriteString(m.Organization)
	b.WriteByte(':')
	b.WriteString(m.Name)
	for _, k := range slices.Sorted(maps.Keys(m.Attributes)) {
		fmt.Fprintf(&b, ";%s=%s", k, m.Attributes[k])
	}
	return b.String()
}

// same reports whether m and o name the same module, ignoring attributes.
func (m Module) same(o Module) bool {
	return m.Organization == o.Organization && m.Name == o.Name
}

// ModuleVersion is a module at a version.
type ModuleVersion struct {
	Module  Module `json:"module"`
	Version string `json:"version"`
}

func (mv ModuleVersion) String() string { return mv.Module.String() + ":" + mv.Version }

// Dependency is a module at a version as requested from the resolver.
type Dependency struct {
	Module     Module
	Version    string
	Transitive bool
}

// Kind is a repository layout.
type Kind string

const (
	KindMaven Kind = "maven"
	KindIvy   Kind = "ivy"
)

// Repository is a resolver-native repository.
type Repository struct {
	Kind        Kind
	Root        string       // maven: repository root URL
	Pattern     *ivy.Pattern // ivy: parsed pattern
	Credentials *integrations.BasicAuth
}

// MavenRepository returns a Maven layout repository rooted at root.
func MavenRepository(root string, creds *integrations.BasicAuth) Repository {
	return Repository{Kind: KindMaven, Root: root, Credentials: creds}
}

// IvyRepository returns an Ivy repository for an already parsed pattern.
func IvyRepository(p *ivy.Pattern, creds *integrations.BasicAuth) Repository {
	return Repository{Kind: KindIvy, Pattern: p, Credentials: creds}
}

// ID identifies the repository in cache keys and logs. Credentials are not
// part of it.
func (r Repository) ID() string {
	switch r.Kind {
	case KindIvy:
		if r.Pattern == nil {
			return "ivy:"
		}
		return "ivy:" + r.Pattern.String()
	default:
		return string(r.Kind) + ":" + r.Root
	}
}

// ArtifactType returns the descriptor artifact type this repository serves.
func (r Repository) ArtifactType() ArtifactType {
	if r.Kind == KindIvy {
		return ArtifactIvy
	}
	return ArtifactPOM
}

// RepositoryIDs returns the IDs of repos in order.
func RepositoryIDs(repos []Repository) []string {
	ids := make([]string, len(repos))
	for i, r := range repos {
		ids[i] = r.ID()
	}
	return ids
}

// ArtifactType is a kind of published artifact.
type ArtifactType string

const (
	ArtifactPOM ArtifactType = "pom"
	ArtifactIvy ArtifactType = "ivy"
)

// DescriptorTypes are the artifact types that carry project metadata.
var DescriptorTypes = []ArtifactType{ArtifactPOM, ArtifactIvy}

// SCM is a project's source control section.
type SCM struct {
	URL string `json:"url"`
}

// Info is descriptive project metadata.
type Info struct {
	Homepage string `json:"homepage,omitempty"`
	SCM      *SCM   `json:"scm,omitempty"`
}

// Project is the metadata record of one module version.
type Project struct {
	Module  Module         `json:"module"`
	Version string         `json:"version"`
	Parent  *ModuleVersion `json:"parent,omitempty"`
	Info    Info           `json:"info"`
	Source  string         `json:"source,omitempty"` // descriptor location
}

// FetchRequest asks for the descriptors of dependencies.
type FetchRequest struct {
	Dependencies  []Dependency
	Repositories  []Repository
	ArtifactTypes []ArtifactType // empty: every type
}

// wants reports whether the request admits artifact type t.
func (r FetchRequest) wants(t ArtifactType) bool {
	return len(r.ArtifactTypes) == 0 || slices.Contains(r.ArtifactTypes, t)
}

// Resolution is the result of a fetch.
type Resolution struct {
	Projects []Project `json:"projects"`
}

// Project returns the record for m at version, if the resolution holds one.
func (r *Resolution) Project(m Module, version string) (*Project, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Projects {
		p := &r.Projects[i]
		if p.Version == version && p.Module.same(m) {
			return p, true
		}
	}
	return nil, false
}
