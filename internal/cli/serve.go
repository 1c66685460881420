package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/artifactscout/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxBatch int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API over the configured repositories and cache.

Endpoints:
  GET  /healthz
  GET  /v1/versions?coordinate=group:artifact[&fresh=true]
  GET  /v1/url?coordinate=group:artifact:version
  POST /v1/urls        {"coordinates": ["group:artifact:version", ...]}
  GET  /v1/stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			srv := server.New(server.Options{
				Service:   e.service,
				Resolvers: e.resolvers,
				Counters:  installCounters(),
				Breakers:  e.http.BreakerStates,
				Logger:    c.Logger,
				MaxBatch:  maxBatch,
			})
			c.Logger.Info("serving", "cache", e.cfg.CacheBackend, "repositories", len(e.resolvers))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxBatch, "max-batch", server.DefaultMaxBatch, "maximum coordinates per POST /v1/urls")
	return cmd
}
