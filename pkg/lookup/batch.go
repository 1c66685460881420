package lookup

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/artifactscout/pkg/deps"
)

// ArtifactIDURLMapping resolves the URL of every dependency concurrently
// and maps each artifact's short name to it. Dependencies without a URL
// are left out. When two dependencies share a short name, the first one in
// input order that resolves wins.
func (s *Service) ArtifactIDURLMapping(ctx context.Context, ds deps.ScopedDependencies) map[string]*url.URL {
	logger := s.logger.With("batch", uuid.NewString())
	scoped := ds.Each()
	found := make([]*url.URL, len(scoped))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, dep := range scoped {
		g.Go(func() error {
			if u, ok := s.artifactURL(ctx, dep, logger); ok {
				found[i] = u
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]*url.URL, len(scoped))
	for i, u := range found {
		name := scoped[i].Dependency.ArtifactID.Name
		if _, dup := out[name]; u != nil && !dup {
			out[name] = u
		}
	}
	return out
}
