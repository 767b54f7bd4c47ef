package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gwconsole/config"
	"gwconsole/internal/channeltype"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Admin:  config.AdminConfig{EndpointsEnabled: true, UIEnabled: true},
		Cache:  config.CacheConfig{Type: config.CacheTypeNone},
		Log:    config.LogConfig{Format: config.LogFormatJSON, Level: "info"},
	}
}

// captureLogs routes the default slog logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// memCache is an in-memory cache.Cache.
type memCache struct {
	snapshot *channeltype.Snapshot
	getErr   error
	setErr   error
	sets     int
	closed   bool
}

func (m *memCache) Get(context.Context) (*channeltype.Snapshot, error) {
	return m.snapshot, m.getErr
}

func (m *memCache) Set(_ context.Context, s *channeltype.Snapshot) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.snapshot = s
	return nil
}

func (m *memCache) Close() error {
	m.closed = true
	return nil
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)

	_, err = New(context.Background(), Config{AppConfig: &config.LoadResult{}})
	require.Error(t, err)
}

func TestNew_DefaultRegistry(t *testing.T) {
	app, err := New(context.Background(), Config{AppConfig: &config.LoadResult{Config: testConfig()}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })

	assert.Equal(t, channeltype.Default().Len(), app.Registry().Len())
	assert.NotNil(t, app.Schema())

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/v1/channel-types/46", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entry channeltype.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "Replicate", entry.Label)
}

func TestNew_RegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel_types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`channel_types:
  - {id: 1, label: OpenAI, color: success}
  - {id: 14, label: Anthropic Claude, color: primary}
`), 0o644))

	cfg := testConfig()
	cfg.ChannelTypes.File = path

	app, err := New(context.Background(), Config{AppConfig: &config.LoadResult{Config: cfg}})
	require.NoError(t, err)
	assert.Equal(t, 2, app.Registry().Len())
}

func TestNew_DuplicateIDIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel_types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`channel_types:
  - {id: 45, label: xAI, color: primary}
  - {id: 45, label: Replicate, color: primary}
`), 0o644))

	cfg := testConfig()
	cfg.ChannelTypes.File = path

	_, err := New(context.Background(), Config{AppConfig: &config.LoadResult{Config: cfg}})
	require.Error(t, err)
	assert.ErrorIs(t, err, channeltype.ErrDuplicateID)
	assert.Contains(t, err.Error(), "xAI")
	assert.Contains(t, err.Error(), "Replicate")
}

func TestNew_CacheFailureDoesNotBlockStartup(t *testing.T) {
	logs := captureLogs(t)

	cfg := testConfig()
	cfg.Cache = config.CacheConfig{
		Type:  config.CacheTypeRedis,
		Redis: config.RedisCacheConfig{URL: "redis://127.0.0.1:1/0"},
	}

	app, err := New(context.Background(), Config{AppConfig: &config.LoadResult{Config: cfg}})
	require.NoError(t, err)
	assert.Nil(t, app.cache)
	assert.Contains(t, logs.String(), "snapshot cache unavailable")
}

func TestNew_LocalCacheStoresSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	cfg := testConfig()
	cfg.Cache = config.CacheConfig{Type: config.CacheTypeLocal, Local: config.LocalCacheConfig{Path: path}}

	app, err := New(context.Background(), Config{AppConfig: &config.LoadResult{Config: cfg}})
	require.NoError(t, err)
	require.NoError(t, app.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snapshot channeltype.Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, channeltype.Default().Snapshot().Fingerprint, snapshot.Fingerprint)
}

func TestNew_UIRequiresEndpoints(t *testing.T) {
	cfg := testConfig()
	cfg.Admin = config.AdminConfig{EndpointsEnabled: false, UIEnabled: true}

	app, err := New(context.Background(), Config{AppConfig: &config.LoadResult{Config: cfg}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckDrift(t *testing.T) {
	ctx := context.Background()

	before := channeltype.MustNew([]channeltype.Entry{
		{ID: 1, Label: "OpenAI", Color: channeltype.ColorSuccess},
		{ID: 14, Label: "Anthropic Claude", Color: channeltype.ColorPrimary},
		{ID: 45, Label: "xAI", Color: channeltype.ColorPrimary},
	})
	after := channeltype.MustNew([]channeltype.Entry{
		{ID: 1, Label: "OpenAI", Color: channeltype.ColorSuccess},
		{ID: 14, Label: "Anthropic", Color: channeltype.ColorPrimary},
		{ID: 46, Label: "Replicate", Color: channeltype.ColorPrimary},
	})

	t.Run("first run stores snapshot", func(t *testing.T) {
		logs := captureLogs(t)
		c := &memCache{}

		checkDrift(ctx, c, before)

		require.NotNil(t, c.snapshot)
		assert.Equal(t, before.Snapshot().Fingerprint, c.snapshot.Fingerprint)
		assert.Contains(t, logs.String(), "no previous channel type snapshot")
		assert.NotContains(t, logs.String(), `"level":"WARN"`)
	})

	t.Run("unchanged registry is quiet", func(t *testing.T) {
		logs := captureLogs(t)
		c := &memCache{snapshot: before.Snapshot()}

		checkDrift(ctx, c, before)

		assert.NotContains(t, logs.String(), "channel type registry changed")
		assert.Equal(t, 1, c.sets)
	})

	t.Run("changed registry warns with diff", func(t *testing.T) {
		logs := captureLogs(t)
		c := &memCache{snapshot: before.Snapshot()}

		checkDrift(ctx, c, after)

		var record map[string]any
		for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
			var m map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &m))
			if m["msg"] == "channel type registry changed" {
				record = m
			}
		}
		require.NotNil(t, record, "expected drift warning, got: %s", logs.String())
		assert.Equal(t, "WARN", record["level"])
		assert.Equal(t, []any{float64(46)}, record["added"])
		assert.Equal(t, []any{float64(45)}, record["removed"])
		assert.Equal(t, []any{float64(14)}, record["changed"])
		assert.Equal(t, after.Snapshot().Fingerprint, c.snapshot.Fingerprint)
	})

	t.Run("cache errors are logged only", func(t *testing.T) {
		logs := captureLogs(t)
		c := &memCache{getErr: errors.New("boom"), setErr: errors.New("read-only")}

		checkDrift(ctx, c, before)

		assert.Contains(t, logs.String(), "failed to read channel type snapshot")
		assert.Contains(t, logs.String(), "failed to store channel type snapshot")
		assert.NotContains(t, logs.String(), "no previous channel type snapshot")
	})
}

func TestShutdown_Idempotent(t *testing.T) {
	app, err := New(context.Background(), Config{AppConfig: &config.LoadResult{Config: testConfig()}})
	require.NoError(t, err)

	c := &memCache{}
	app.cache = c

	require.NoError(t, app.Shutdown(context.Background()))
	require.NoError(t, app.Shutdown(context.Background()))
	assert.True(t, c.closed)
}
