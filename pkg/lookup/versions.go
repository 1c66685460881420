package lookup

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artifactscout/pkg/deps"
	"github.com/matzehuels/artifactscout/pkg/observability"
	"github.com/matzehuels/artifactscout/pkg/resolve"
	"github.com/matzehuels/artifactscout/pkg/version"
)

// Versions returns the published versions of dep sorted ascending, served
// from the cache while it is fresh. Failures yield an empty slice. When only
// some repositories fail, the versions of the others are returned and the
// result is not cached.
func (s *Service) Versions(ctx context.Context, dep deps.ScopedDependency) []version.Version {
	return s.versions(ctx, s.cached, dep, false)
}

// VersionsFresh is like Versions but always queries the repositories. The
// result is written back to the shared store.
func (s *Service) VersionsFresh(ctx context.Context, dep deps.ScopedDependency) []version.Version {
	return s.versions(ctx, s.fresh, dep, true)
}

func (s *Service) versions(ctx context.Context, client resolve.Client, dep deps.ScopedDependency, fresh bool) []version.Version {
	start := time.Now()
	d := toDependency(dep.Dependency)
	repos := toRepositories(dep.Resolvers, s.logger)

	raw, err := client.ListVersions(ctx, d.Module, repos)
	if err != nil {
		fetchFailed(ctx, s.logger, "versions", dep.Dependency, err)
		if !errors.Is(err, resolve.ErrPartial) {
			observability.Lookup().OnVersions(ctx, dep.Dependency.String(), fresh, 0, time.Since(start))
			return []version.Version{}
		}
	}

	vs := version.ParseAll(raw)
	observability.Lookup().OnVersions(ctx, dep.Dependency.String(), fresh, len(vs), time.Since(start))
	return vs
}

// fetchFailed is the single place a remote failure is turned into a log line.
func fetchFailed(ctx context.Context, logger *log.Logger, op string, c deps.Coordinate, err error) {
	logger.Debug("metadata fetch failed", "dependency", c.PURL(), "op", op, "err", err)
	observability.Lookup().OnFetchError(ctx, op, c.String(), err)
}
