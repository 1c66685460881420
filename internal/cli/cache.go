package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artifactscout/internal/config"
	"github.com/matzehuels/artifactscout/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the metadata cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached metadata from the file cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.CacheBackend != config.BackendFile {
				printWarning("cache clear only manages the file backend (configured: %s)", cfg.CacheBackend)
				return nil
			}

			store, err := cache.NewFileStore(cfg.CacheDir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			prog := newProgress(c.Logger)
			count, err := store.Clear()
			if err != nil {
				printError("Failed to clear cache")
				return fmt.Errorf("clear cache: %w", err)
			}
			prog.debug("Cache cleared")

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", store.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.CacheDir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the effective cache settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printKeyValue("backend", cfg.CacheBackend)
			printKeyValue("ttl", cfg.CacheTTL.String())
			switch cfg.CacheBackend {
			case config.BackendFile:
				printKeyValue("directory", cfg.CacheDir)
			case config.BackendRedis:
				printKeyValue("redis", cfg.RedisAddr)
			case config.BackendMongo:
				printKeyValue("mongo", cfg.MongoDatabase)
			}
			if cfg.CacheNamespace != "" {
				printKeyValue("namespace", cfg.CacheNamespace)
			}
			return nil
		},
	}
}
