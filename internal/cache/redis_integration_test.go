//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"gwconsole/internal/channeltype"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisCache_RoundTrip(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	cache, err := NewRedisCache(ctx, RedisConfig{URL: url, TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "empty key should read as no snapshot")

	snapshot := channeltype.Default().Snapshot()
	require.NoError(t, cache.Set(ctx, snapshot))

	got, err = cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snapshot.Fingerprint, got.Fingerprint)
	assert.Len(t, got.Entries, channeltype.Default().Len())

	ttl, err := cache.client.TTL(ctx, DefaultRedisKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisCache_SharedAcrossInstances(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	first, err := NewRedisCache(ctx, RedisConfig{URL: url, Key: "test:shared"})
	require.NoError(t, err)
	defer first.Close()
	second, err := NewRedisCache(ctx, RedisConfig{URL: url, Key: "test:shared"})
	require.NoError(t, err)
	defer second.Close()

	snapshot := channeltype.Default().Snapshot()
	require.NoError(t, first.Set(ctx, snapshot))

	got, err := second.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Diff(snapshot).Empty())
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{URL: "redis://127.0.0.1:1/0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
