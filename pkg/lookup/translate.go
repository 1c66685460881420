package lookup

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/artifactscout/pkg/deps"
	"github.com/matzehuels/artifactscout/pkg/integrations"
	"github.com/matzehuels/artifactscout/pkg/integrations/ivy"
	"github.com/matzehuels/artifactscout/pkg/resolve"
)

// toDependency converts a coordinate into a non-transitive resolver
// dependency. The attribute map is copied.
func toDependency(c deps.Coordinate) resolve.Dependency {
	return resolve.Dependency{
		Module: resolve.Module{
			Organization: c.GroupID,
			Name:         c.ArtifactID.Resolved(),
			Attributes:   c.AttributesCopy(),
		},
		Version:    c.Version,
		Transitive: false,
	}
}

// toRepositories converts resolvers in order. Ivy resolvers whose pattern
// does not parse are logged and left out.
func toRepositories(resolvers []deps.Resolver, logger *log.Logger) []resolve.Repository {
	repos := make([]resolve.Repository, 0, len(resolvers))
	for _, r := range resolvers {
		switch r := r.(type) {
		case deps.MavenRepository:
			repos = append(repos, resolve.MavenRepository(r.Location, toAuth(r.Credentials)))
		case deps.IvyRepository:
			p, err := ivy.ParsePattern(r.Pattern)
			if err != nil {
				logger.Error("skipping repository", "resolver", r.Name, "err", err)
				continue
			}
			repos = append(repos, resolve.IvyRepository(p, toAuth(r.Credentials)))
		}
	}
	return repos
}

func toAuth(c *deps.Credentials) *integrations.BasicAuth {
	if c == nil {
		return nil
	}
	return &integrations.BasicAuth{User: c.User, Password: c.Password}
}
