package cache

import (
	"context"
	"fmt"

	"gwconsole/config"
)

// New builds the cache selected by cfg.Type. It returns nil, nil for "none".
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	switch cfg.Type {
	case config.CacheTypeNone, "":
		return nil, nil
	case config.CacheTypeLocal:
		return NewLocalCache(cfg.Local.Path), nil
	case config.CacheTypeRedis:
		return NewRedisCache(ctx, RedisConfig{
			URL: cfg.Redis.URL,
			Key: cfg.Redis.Key,
			TTL: cfg.Redis.TTL,
		})
	default:
		return nil, fmt.Errorf("unknown cache type: %s (valid: none, local, redis)", cfg.Type)
	}
}
