// Package config loads the artifactscout configuration file.
//
// The file is TOML:
//
//	cache_ttl = "6h"
//	cache_backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[[repository]]
//	name = "internal"
//	kind = "maven"
//	location = "https://repo.example.com/maven2"
//	user = "ci"
//	password = "secret"
//
//	[[repository]]
//	name = "sbt-plugins"
//	kind = "ivy"
//	pattern = "https://repo.scala-sbt.org/scalasbt/sbt-plugin-releases/[organisation]/[module]/(scala_[scalaVersion]/)(sbt_[sbtVersion]/)[revision]/ivys/ivy.xml"
//
// Missing keys keep their defaults. When no repository is configured, Maven
// Central is used.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/artifactscout/pkg/buildinfo"
	"github.com/matzehuels/artifactscout/pkg/deps"
	apperr "github.com/matzehuels/artifactscout/pkg/errors"
	"github.com/matzehuels/artifactscout/pkg/integrations/ivy"
	"github.com/matzehuels/artifactscout/pkg/lookup"
)

const appName = "artifactscout"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Repository kinds.
const (
	KindMaven = "maven"
	KindIvy   = "ivy"
)

// Duration is a time.Duration that decodes from strings like "6h" or "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Repository is one [[repository]] table.
type Repository struct {
	Name     string `toml:"name"`
	Kind     string `toml:"kind"`
	Location string `toml:"location"` // maven
	Pattern  string `toml:"pattern"`  // ivy
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// Config is the decoded configuration file.
type Config struct {
	CacheTTL       Duration     `toml:"cache_ttl"`
	CacheBackend   string       `toml:"cache_backend"`
	CacheDir       string       `toml:"cache_dir"`
	CacheNamespace string       `toml:"cache_namespace"`
	RedisAddr      string       `toml:"redis_addr"`
	MongoURI       string       `toml:"mongo_uri"`
	MongoDatabase  string       `toml:"mongo_database"`
	Concurrency    int          `toml:"concurrency"`
	MaxParentDepth int          `toml:"max_parent_depth"`
	HTTPTimeout    Duration     `toml:"http_timeout"`
	UserAgent      string       `toml:"user_agent"`
	Repositories   []Repository `toml:"repository"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		CacheTTL:       Duration{lookup.DefaultCacheTTL},
		CacheBackend:   BackendFile,
		CacheDir:       DefaultCacheDir(),
		RedisAddr:      "localhost:6379",
		MongoDatabase:  appName,
		Concurrency:    lookup.DefaultConcurrency,
		MaxParentDepth: lookup.DefaultMaxParentDepth,
		HTTPTimeout:    Duration{30 * time.Second},
		UserAgent:      buildinfo.UserAgent(),
	}
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/artifactscout/).
// It returns "" when no home directory can be determined.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

// DefaultPath returns the configuration file looked up when --config is not
// given ($XDG_CONFIG_HOME/artifactscout/config.toml).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

// Load reads path over the defaults. An empty path tries DefaultPath and
// silently falls back to the defaults when that file does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, apperr.New(apperr.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backends, kinds and limits.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case BackendFile:
		if c.CacheDir == "" {
			return apperr.New(apperr.ErrCodeInvalidConfig, "cache_dir is required for the file backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return apperr.New(apperr.ErrCodeInvalidConfig, "redis_addr is required for the redis backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return apperr.New(apperr.ErrCodeInvalidConfig, "mongo_uri is required for the mongo backend")
		}
	case BackendMemory, BackendNone:
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "unknown cache_backend %q", c.CacheBackend)
	}

	if c.CacheTTL.Duration < 0 || c.HTTPTimeout.Duration < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "durations must not be negative")
	}
	if c.Concurrency < 0 || c.MaxParentDepth < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "concurrency and max_parent_depth must not be negative")
	}

	seen := make(map[string]bool, len(c.Repositories))
	for i, r := range c.Repositories {
		if r.Name == "" {
			return apperr.New(apperr.ErrCodeInvalidConfig, "repository %d: name is required", i)
		}
		if seen[r.Name] {
			return apperr.New(apperr.ErrCodeInvalidConfig, "repository %q: duplicate name", r.Name)
		}
		seen[r.Name] = true

		switch r.Kind {
		case KindMaven, "":
			if err := apperr.ValidateURL(r.Location); err != nil {
				return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "repository %q", r.Name)
			}
		case KindIvy:
			if _, err := ivy.ParsePattern(r.Pattern); err != nil {
				return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "repository %q", r.Name)
			}
		default:
			return apperr.New(apperr.ErrCodeInvalidConfig, "repository %q: unknown kind %q", r.Name, r.Kind)
		}
	}
	return nil
}

// Resolvers converts the configured repositories in file order. With none
// configured it returns Maven Central.
func (c Config) Resolvers() []deps.Resolver {
	if len(c.Repositories) == 0 {
		return []deps.Resolver{deps.MavenCentral}
	}
	out := make([]deps.Resolver, 0, len(c.Repositories))
	for _, r := range c.Repositories {
		var creds *deps.Credentials
		if r.User != "" || r.Password != "" {
			creds = &deps.Credentials{User: r.User, Password: r.Password}
		}
		if r.Kind == KindIvy {
			out = append(out, deps.IvyRepository{Name: r.Name, Pattern: r.Pattern, Credentials: creds})
		} else {
			out = append(out, deps.MavenRepository{Name: r.Name, Location: r.Location, Credentials: creds})
		}
	}
	return out
}
