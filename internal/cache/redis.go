package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"gwconsole/internal/channeltype"
)

const (
	// DefaultRedisKey is the default key holding the registry snapshot.
	DefaultRedisKey = "gwconsole:channel_types"

	// DefaultRedisTTL lets a snapshot expire if no instance has started for a month.
	DefaultRedisTTL = 30 * 24 * time.Hour

	redisConnectTimeout = 5 * time.Second
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379" or "redis://:password@host:6379/0")
	URL string

	// Key is the Redis key to store the snapshot (defaults to DefaultRedisKey)
	Key string

	// TTL is the time-to-live for the snapshot (defaults to DefaultRedisTTL)
	TTL time.Duration
}

// RedisCache implements Cache using Redis, so every console instance behind
// a load balancer compares against the same snapshot.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = DefaultRedisKey
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultRedisTTL
	}

	slog.Info("redis cache connected", "key", key, "ttl", ttl)

	return &RedisCache{
		client: client,
		key:    key,
		ttl:    ttl,
	}, nil
}

// Get retrieves the snapshot from Redis.
func (c *RedisCache) Get(ctx context.Context) (*channeltype.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot from redis: %w", err)
	}

	var snapshot channeltype.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot from redis: %w", err)
	}

	return &snapshot, nil
}

// Set stores the snapshot in Redis.
func (c *RedisCache) Set(ctx context.Context, snapshot *channeltype.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot in redis: %w", err)
	}

	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
