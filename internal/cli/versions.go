package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artifactscout/pkg/deps"
	"github.com/matzehuels/artifactscout/pkg/version"
)

// versionsCommand creates the versions command.
func (c *CLI) versionsCommand() *cobra.Command {
	var (
		opts  coordOpts
		fresh bool
		pick  bool
	)

	cmd := &cobra.Command{
		Use:   "versions <group:artifact[:version]>",
		Short: "List the published versions of an artifact",
		Long: `List the published versions of an artifact, oldest first.

Results are served from the metadata cache while it is fresh; --fresh always
queries the repositories and refreshes the cache.

Examples:
  artifactscout versions com.google.guava:guava
  artifactscout versions org.typelevel:cats-core --cross _2.13
  artifactscout versions com.eed3si9n:sbt-assembly --attr sbtVersion=1.0 --attr scalaVersion=2.12
  artifactscout versions org.slf4j:slf4j-api --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := opts.coordinate(args[0], false)
			if err != nil {
				return err
			}

			e, err := c.newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			dep := deps.Scope(coord, e.resolvers...)
			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), "Listing versions of "+coord.Module()+"...")
			spinner.Start()
			var vs []version.Version
			if fresh {
				vs = e.service.VersionsFresh(cmd.Context(), dep)
			} else {
				vs = e.service.Versions(cmd.Context(), dep)
			}
			spinner.Stop()
			prog.debug(fmt.Sprintf("Found %d versions of %s", len(vs), coord.Module()))

			if len(vs) == 0 {
				printWarning("No versions found for %s", coord.Module())
				return nil
			}

			if pick {
				chosen, err := pickVersion(coord.Module(), vs)
				if err != nil || chosen == "" {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), chosen)
				return nil
			}

			for _, v := range vs {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&fresh, "fresh", false, "query the repositories even if a cached listing is fresh")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a version interactively")

	return cmd
}

// pickVersion runs the interactive version list and returns the chosen
// version, or "" when the user quit without choosing.
func pickVersion(module string, vs []version.Version) (string, error) {
	final, err := tea.NewProgram(NewVersionListModel(module, vs)).Run()
	if err != nil {
		return "", fmt.Errorf("version picker: %w", err)
	}
	return final.(VersionListModel).Selected, nil
}
