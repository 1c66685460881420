package config

import (
	"context"

	"github.com/matzehuels/artifactscout/pkg/cache"
	apperr "github.com/matzehuels/artifactscout/pkg/errors"
)

// redisPrefix namespaces artifactscout keys in a shared Redis database.
const redisPrefix = appName + ":"

// OpenStore connects the configured cache backend. The caller closes it.
func (c Config) OpenStore(ctx context.Context) (cache.Store, error) {
	switch c.CacheBackend {
	case BackendFile:
		return cache.NewFileStore(c.CacheDir)
	case BackendMemory:
		return cache.NewMemoryStore(), nil
	case BackendRedis:
		return cache.NewRedisStore(ctx, c.RedisAddr, redisPrefix)
	case BackendMongo:
		return cache.NewMongoStore(ctx, c.MongoURI, c.MongoDatabase)
	case BackendNone:
		return cache.NewNullStore(), nil
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidConfig, "unknown cache_backend %q", c.CacheBackend)
	}
}

// Keyer returns the cache keyer, scoped by cache_namespace when set.
func (c Config) Keyer() cache.Keyer {
	if c.CacheNamespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.CacheNamespace)
}
