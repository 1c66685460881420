package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artifactscout/pkg/deps"
	apperr "github.com/matzehuels/artifactscout/pkg/errors"
)

// coordOpts holds the flags that qualify coordinate arguments.
type coordOpts struct {
	cross string   // cross-build suffix, e.g. "_2.13"
	attrs []string // key=value extra attributes
}

func (o *coordOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.cross, "cross", "", "cross-build suffix appended to the artifact name (e.g. _2.13)")
	cmd.Flags().StringArrayVar(&o.attrs, "attr", nil, "extra attribute as key=value, e.g. sbtVersion=1.0 (repeatable)")
}

// coordinate parses and validates a "group:artifact[:version]" argument.
func (o *coordOpts) coordinate(arg string, requireVersion bool) (deps.Coordinate, error) {
	return deps.ParseQualified(arg, o.cross, o.attrs, requireVersion)
}

// parseRepoFlags turns --repo name=url values into Maven resolvers.
func parseRepoFlags(values []string) ([]deps.Resolver, error) {
	out := make([]deps.Resolver, 0, len(values))
	for _, v := range values {
		name, location, ok := strings.Cut(v, "=")
		name, location = strings.TrimSpace(name), strings.TrimSpace(location)
		if !ok || name == "" {
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "invalid --repo %q (expected name=url)", v)
		}
		if err := apperr.ValidateURL(location); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid --repo %q", v)
		}
		out = append(out, deps.MavenRepository{Name: name, Location: location})
	}
	return out, nil
}
