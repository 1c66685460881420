package lookup

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artifactscout/pkg/cache"
	"github.com/matzehuels/artifactscout/pkg/resolve"
)

// Defaults applied by [New] to zero Config fields.
const (
	DefaultCacheTTL       = 6 * time.Hour
	DefaultMaxParentDepth = 20
	DefaultConcurrency    = 8
)

// Config configures a [Service].
type Config struct {
	// CacheTTL is how long fetched metadata is served from the store by the
	// normal entry points.
	CacheTTL time.Duration

	// Logger receives translation errors (error level) and swallowed fetch
	// failures (debug level). nil uses log.Default().
	Logger *log.Logger

	// MaxParentDepth bounds how many parent records ArtifactURL follows.
	MaxParentDepth int

	// Concurrency bounds parallel resolutions in ArtifactIDURLMapping.
	Concurrency int

	// Keyer builds store keys. nil uses cache.NewDefaultKeyer().
	Keyer cache.Keyer
}

// Service answers version and URL lookups for scoped dependencies.
//
// Every operation is total: remote failures are logged and degrade to an
// empty or absent result. A Service is safe for concurrent use.
type Service struct {
	cached *resolve.CachedClient // default policy
	fresh  *resolve.CachedClient // no-ttl policy, same store
	logger *log.Logger
	cfg    Config
}

// New creates a Service that resolves through client and caches in store.
// Both freshness policies share store. A nil store disables caching.
func New(client resolve.Client, store cache.Store, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.MaxParentDepth <= 0 {
		cfg.MaxParentDepth = DefaultMaxParentDepth
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if store == nil {
		store = cache.NewNullStore()
	}

	return &Service{
		cached: resolve.NewCachedClient(client, store, cache.Default(cfg.CacheTTL), cfg.Keyer),
		fresh:  resolve.NewCachedClient(client, store, cache.NoTTL, cfg.Keyer),
		logger: cfg.Logger,
		cfg:    cfg,
	}
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }
