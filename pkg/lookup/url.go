package lookup

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artifactscout/pkg/deps"
	"github.com/matzehuels/artifactscout/pkg/observability"
	"github.com/matzehuels/artifactscout/pkg/resolve"
)

// ArtifactURL returns the source control or homepage URL of dep.
//
// The dependency's own descriptor is consulted first. When it has no usable
// URL its parent's descriptor is tried with the same repositories, and so on
// up the chain. The walk stops at a failed fetch, a missing record, a record
// without parent, a parent seen before, or after Config.MaxParentDepth
// parents; in all those cases the result is absent.
func (s *Service) ArtifactURL(ctx context.Context, dep deps.ScopedDependency) (*url.URL, bool) {
	return s.artifactURL(ctx, dep, s.logger)
}

func (s *Service) artifactURL(ctx context.Context, dep deps.ScopedDependency, logger *log.Logger) (*url.URL, bool) {
	start := time.Now()
	repos := toRepositories(dep.Resolvers, logger)

	u, depth := s.walk(ctx, dep.Dependency, repos, logger)
	observability.Lookup().OnArtifactURL(ctx, dep.Dependency.String(), u != nil, depth, time.Since(start))
	return u, u != nil
}

// walk follows the parent chain. depth is the number of parents consulted.
func (s *Service) walk(ctx context.Context, c deps.Coordinate, repos []resolve.Repository, logger *log.Logger) (*url.URL, int) {
	current := toDependency(c)
	visited := make(map[string]bool)

	for depth := 0; depth <= s.cfg.MaxParentDepth; depth++ {
		id := resolve.ModuleVersion{Module: current.Module, Version: current.Version}.String()
		if visited[id] {
			logger.Debug("parent cycle", "dependency", c.PURL(), "at", id)
			return nil, depth
		}
		visited[id] = true

		res, err := s.cached.Fetch(ctx, resolve.FetchRequest{
			Dependencies:  []resolve.Dependency{current},
			Repositories:  repos,
			ArtifactTypes: resolve.DescriptorTypes,
		})
		if err != nil {
			fetchFailed(ctx, logger, "artifact-url", c, err)
			return nil, depth
		}

		project, ok := res.Project(current.Module, current.Version)
		if !ok {
			return nil, depth
		}
		if u, ok := SelectURL(project.Info); ok {
			return u, depth
		}
		if project.Parent == nil {
			return nil, depth
		}
		current = resolve.Dependency{Module: project.Parent.Module, Version: project.Parent.Version}
	}

	logger.Debug("parent chain too deep", "dependency", c.PURL(), "max", s.cfg.MaxParentDepth)
	return nil, s.cfg.MaxParentDepth
}

// SelectURL picks the first usable URL of [scm url, homepage]. Empty
// strings, git@ and git: addresses, and strings that do not parse as a URL
// with a scheme are skipped.
func SelectURL(info resolve.Info) (*url.URL, bool) {
	candidates := make([]string, 0, 2)
	if info.SCM != nil {
		candidates = append(candidates, info.SCM.URL)
	}
	candidates = append(candidates, info.Homepage)

	for _, c := range candidates {
		if c == "" || strings.HasPrefix(c, "git@") || strings.HasPrefix(c, "git:") {
			continue
		}
		u, err := url.Parse(c)
		if err != nil || u.Scheme == "" {
			continue
		}
		return u, true
	}
	return nil, false
}
