// Package cli implements the artifactscout command-line interface.
//
// # Commands
//
//   - versions: list the published versions of an artifact
//   - url: resolve an artifact's source or homepage URL
//   - urls: resolve URLs for many artifacts at once
//   - cache: manage the metadata cache
//   - serve: run the HTTP API
//
// All commands support --verbose (-v) for debug-level logging, which also
// surfaces the repository failures that lookups otherwise absorb.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artifactscout/internal/config"
	"github.com/matzehuels/artifactscout/pkg/buildinfo"
	"github.com/matzehuels/artifactscout/pkg/cache"
	"github.com/matzehuels/artifactscout/pkg/deps"
	"github.com/matzehuels/artifactscout/pkg/integrations"
	"github.com/matzehuels/artifactscout/pkg/lookup"
	"github.com/matzehuels/artifactscout/pkg/observability"
	"github.com/matzehuels/artifactscout/pkg/resolve"
)

// appName is the application name used for directories and display.
const appName = "artifactscout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	repos      []string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Artifactscout looks up versions and project URLs of Maven and Ivy artifacts",
		Long:         `Artifactscout queries Maven and Ivy repositories for the published versions of an artifact and for the source or homepage URL declared in its descriptor, following parent descriptors when needed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/artifactscout/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the metadata cache")
	flags.StringArrayVarP(&c.repos, "repo", "r", nil, "extra Maven repository as name=url (repeatable)")

	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.urlCommand())
	root.AddCommand(c.urlsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Environment - per-command wiring
// =============================================================================

// env is everything a lookup command needs. Close releases the store.
type env struct {
	cfg       config.Config
	store     cache.Store
	http      *integrations.Client
	service   *lookup.Service
	resolvers []deps.Resolver
}

func (e *env) Close() error { return e.store.Close() }

// loadConfig reads the config file and applies --no-cache.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.noCache {
		cfg.CacheBackend = config.BackendNone
	}
	return cfg, nil
}

// newEnv wires config, store, HTTP client and lookup service.
func (c *CLI) newEnv(ctx context.Context) (*env, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	extra, err := parseRepoFlags(c.repos)
	if err != nil {
		return nil, err
	}

	store, err := cfg.OpenStore(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.CacheBackend, "err", err)
		store = cache.NewNullStore()
	}

	httpClient := integrations.NewClient(integrations.Options{
		Timeout:   cfg.HTTPTimeout.Duration,
		UserAgent: cfg.UserAgent,
	})

	service := lookup.New(resolve.NewHTTPClient(httpClient), store, lookup.Config{
		CacheTTL:       cfg.CacheTTL.Duration,
		Logger:         c.Logger,
		MaxParentDepth: cfg.MaxParentDepth,
		Concurrency:    cfg.Concurrency,
		Keyer:          cfg.Keyer(),
	})

	return &env{
		cfg:       cfg,
		store:     store,
		http:      httpClient,
		service:   service,
		resolvers: append(cfg.Resolvers(), extra...),
	}, nil
}

// installCounters registers in-memory counters for all hook categories.
func installCounters() *observability.Counters {
	counters := observability.NewCounters()
	observability.SetLookupHooks(counters)
	observability.SetCacheHooks(counters)
	observability.SetHTTPHooks(counters)
	return counters
}
