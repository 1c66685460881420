package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artifactscout/pkg/deps"
)

// urlCommand creates the url command.
func (c *CLI) urlCommand() *cobra.Command {
	var opts coordOpts

	cmd := &cobra.Command{
		Use:   "url <group:artifact:version>",
		Short: "Resolve the source or homepage URL of an artifact",
		Long: `Resolve the source control or homepage URL declared by an artifact.

When the artifact's own descriptor has none, parent descriptors are followed.

Examples:
  artifactscout url com.google.guava:guava:32.1.3-jre
  artifactscout url org.typelevel:cats-core:2.10.0 --cross _2.13`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := opts.coordinate(args[0], true)
			if err != nil {
				return err
			}

			e, err := c.newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			u, ok := e.service.ArtifactURL(cmd.Context(), deps.Scope(coord, e.resolvers...))
			if !ok {
				printWarning("No URL found for %s", coord)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

// urlsCommand creates the urls command.
func (c *CLI) urlsCommand() *cobra.Command {
	var opts coordOpts

	cmd := &cobra.Command{
		Use:   "urls <group:artifact:version>...",
		Short: "Resolve URLs for many artifacts concurrently",
		Long: `Resolve URLs for many artifacts concurrently and print them by artifact name.

Artifacts without a URL are listed below the table.

Example:
  artifactscout urls org.typelevel:cats-core:2.10.0 org.typelevel:cats-effect:3.5.4 --cross _2.13`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords := make([]deps.Coordinate, 0, len(args))
			for _, a := range args {
				coord, err := opts.coordinate(a, true)
				if err != nil {
					return err
				}
				coords = append(coords, coord)
			}

			e, err := c.newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Resolving %d artifacts...", len(coords)))
			spinner.Start()
			mapping := e.service.ArtifactIDURLMapping(cmd.Context(), deps.ScopedDependencies{
				Dependencies: coords,
				Resolvers:    e.resolvers,
			})
			spinner.Stop()
			prog.debug(fmt.Sprintf("Resolved %d of %d artifacts", len(mapping), len(coords)))

			if len(mapping) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderURLTable(mapping))
			}
			printUnresolved(unresolved(coords, mapping))
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
