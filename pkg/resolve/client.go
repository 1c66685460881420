package resolve

import (
	"context"
	"errors"
	"fmt"

	apperr "github.com/matzehuels/artifactscout/pkg/errors"
	"github.com/matzehuels/artifactscout/pkg/integrations"
	"github.com/matzehuels/artifactscout/pkg/integrations/ivy"
	"github.com/matzehuels/artifactscout/pkg/integrations/maven"
)

// ErrPartial marks a version listing in which some repositories could not
// be queried. The versions returned alongside it come from the others.
var ErrPartial = errors.New("some repositories could not be queried")

// Client is the metadata-resolution capability.
//
// ListVersions returns the version strings of a module published across
// repos, unordered. When only some repositories fail it returns their union
// together with an error wrapping [ErrPartial]. Fetch retrieves descriptor
// records; a dependency whose descriptor exists in none of the repositories
// has no record in the Resolution. Both fail when a repository could not be
// queried.
type Client interface {
	ListVersions(ctx context.Context, m Module, repos []Repository) ([]string, error)
	Fetch(ctx context.Context, req FetchRequest) (*Resolution, error)
}

// HTTPClient implements Client against Maven and Ivy repositories over HTTP.
type HTTPClient struct {
	maven *maven.Client
	ivy   *ivy.Client
}

// NewHTTPClient creates a Client backed by the shared HTTP client.
func NewHTTPClient(http *integrations.Client) *HTTPClient {
	return &HTTPClient{
		maven: maven.NewClient(http),
		ivy:   ivy.NewClient(http),
	}
}

// ListVersions unions the versions found in every repository, keeping the
// first-seen order. A repository without the module contributes nothing.
// Failures of the others are reported: wrapped in [ErrPartial] next to the
// union when some repository answered, on their own otherwise.
func (c *HTTPClient) ListVersions(ctx context.Context, m Module, repos []Repository) ([]string, error) {
	var (
		versions []string
		seen     = make(map[string]bool)
		errs     []error
		answered bool
	)
	for _, repo := range repos {
		vs, err := c.listVersions(ctx, m, repo)
		if err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				answered = true
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			errs = append(errs, fmt.Errorf("%s: %w", repo.ID(), err))
			continue
		}
		answered = true
		for _, v := range vs {
			if !seen[v] {
				seen[v] = true
				versions = append(versions, v)
			}
		}
	}
	if len(errs) == 0 {
		return versions, nil
	}
	if !answered {
		return nil, errors.Join(errs...)
	}
	return versions, fmt.Errorf("%w: %w", ErrPartial, errors.Join(errs...))
}

func (c *HTTPClient) listVersions(ctx context.Context, m Module, repo Repository) ([]string, error) {
	switch repo.Kind {
	case KindMaven:
		r := maven.Repository{URL: repo.Root, Auth: repo.Credentials}
		return c.maven.ListVersions(ctx, r, m.Organization, maven.ArtifactName(m.Name, m.Attributes))
	case KindIvy:
		r := ivy.Repository{Pattern: repo.Pattern, Auth: repo.Credentials}
		return c.ivy.ListVersions(ctx, r, m.Organization, m.Name, m.Attributes)
	default:
		return nil, apperr.New(apperr.ErrCodeUnsupported, "repository kind %q", repo.Kind)
	}
}

// Fetch retrieves the descriptor of each dependency from the first
// repository (in order) that has one, skipping repositories whose
// descriptor type the request excludes. Transitive resolution is not
// supported.
func (c *HTTPClient) Fetch(ctx context.Context, req FetchRequest) (*Resolution, error) {
	res := &Resolution{}
	var errs []error

	for _, dep := range req.Dependencies {
		if dep.Transitive {
			return nil, apperr.New(apperr.ErrCodeUnsupported, "transitive fetch of %s", dep.Module)
		}
		p, err := c.fetchOne(ctx, dep, req)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if p != nil {
			res.Projects = append(res.Projects, *p)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return res, nil
}

// fetchOne returns (nil, nil) when no repository has the descriptor.
func (c *HTTPClient) fetchOne(ctx context.Context, dep Dependency, req FetchRequest) (*Project, error) {
	var errs []error
	for _, repo := range req.Repositories {
		if !req.wants(repo.ArtifactType()) {
			continue
		}
		p, err := c.fetchFrom(ctx, dep, repo)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, integrations.ErrNotFound) {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%s: %w", repo.ID(), err))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("fetch %s:%s: %w", dep.Module, dep.Version, errors.Join(errs...))
	}
	return nil, nil
}

func (c *HTTPClient) fetchFrom(ctx context.Context, dep Dependency, repo Repository) (*Project, error) {
	switch repo.Kind {
	case KindMaven:
		r := maven.Repository{URL: repo.Root, Auth: repo.Credentials}
		pom, err := c.maven.FetchPOM(ctx, r, dep.Module.Organization, maven.ArtifactName(dep.Module.Name, dep.Module.Attributes), dep.Version)
		if err != nil {
			return nil, err
		}
		return projectFromPOM(dep, pom), nil
	case KindIvy:
		r := ivy.Repository{Pattern: repo.Pattern, Auth: repo.Credentials}
		d, err := c.ivy.FetchDescriptor(ctx, r, dep.Module.Organization, dep.Module.Name, dep.Version, dep.Module.Attributes)
		if err != nil {
			return nil, err
		}
		return projectFromIvy(dep, d), nil
	default:
		return nil, apperr.New(apperr.ErrCodeUnsupported, "repository kind %q", repo.Kind)
	}
}

func projectFromPOM(dep Dependency, pom *maven.POM) *Project {
	p := &Project{
		Module:  dep.Module,
		Version: dep.Version,
		Info:    Info{Homepage: pom.URL},
		Source:  pom.Location,
	}
	if pom.SCM != nil {
		p.Info.SCM = &SCM{URL: pom.SCM.URL}
	}
	if pom.Parent != nil && pom.Parent.ArtifactID != "" {
		p.Parent = &ModuleVersion{
			Module:  Module{Organization: pom.Parent.GroupID, Name: pom.Parent.ArtifactID},
			Version: pom.Parent.Version,
		}
	}
	return p
}

func projectFromIvy(dep Dependency, d *ivy.Descriptor) *Project {
	p := &Project{
		Module:  dep.Module,
		Version: dep.Version,
		Info:    Info{Homepage: d.Homepage},
		Source:  d.Location,
	}
	if d.Extends != nil && d.Extends.Module != "" {
		p.Parent = &ModuleVersion{
			Module:  Module{Organization: d.Extends.Organisation, Name: d.Extends.Module},
			Version: d.Extends.Revision,
		}
	}
	return p
}

var _ Client = (*HTTPClient)(nil)
