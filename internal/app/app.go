// Package app provides the main application struct for centralized dependency management
// and lifecycle control of the console server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"gwconsole/config"
	"gwconsole/internal/admin"
	"gwconsole/internal/admin/dashboard"
	"gwconsole/internal/cache"
	"gwconsole/internal/channeltype"
	"gwconsole/internal/observability"
	"gwconsole/internal/server"
	"gwconsole/internal/viewschema"
)

// App represents the main application with all its dependencies.
// It provides centralized lifecycle management for all components.
type App struct {
	config   *config.Config
	registry *channeltype.Registry
	schema   *viewschema.Provider
	cache    cache.Cache
	server   *server.Server

	shutdownMu sync.Mutex
	shutdown   bool
}

// Config holds the configuration options for creating an App.
type Config struct {
	// AppConfig holds the loaded application configuration produced by config.Load.
	AppConfig *config.LoadResult
}

// New creates a new App with all dependencies initialized.
// A channel type table that fails validation is a fatal error; snapshot cache
// problems are logged and never block startup.
// The caller must call Shutdown to release resources.
func New(ctx context.Context, cfg Config) (*App, error) {
	if cfg.AppConfig == nil {
		return nil, fmt.Errorf("app config is required")
	}
	if cfg.AppConfig.Config == nil {
		return nil, fmt.Errorf("app config contains nil Config")
	}

	appCfg := cfg.AppConfig.Config
	app := &App{config: appCfg}

	registry, err := loadRegistry(appCfg.ChannelTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel types: %w", err)
	}
	app.registry = registry

	if appCfg.Metrics.Enabled {
		observability.ChannelTypes.Set(float64(registry.Len()))
		app.schema = viewschema.NewProviderWithHooks(registry, observability.NewPrometheusHooks())
	} else {
		app.schema = viewschema.NewProvider(registry)
	}

	app.logStartupInfo(cfg.AppConfig.Source)

	snapshotCache, err := cache.New(ctx, appCfg.Cache)
	if err != nil {
		slog.Warn("snapshot cache unavailable, skipping drift detection", "type", appCfg.Cache.Type, "error", err)
	} else if snapshotCache != nil {
		app.cache = snapshotCache
		checkDrift(ctx, snapshotCache, registry)
	}

	serverCfg := &server.Config{
		MasterKey:       appCfg.Server.MasterKey,
		ViewerKeys:      appCfg.Server.ViewerKeys,
		MetricsEnabled:  appCfg.Metrics.Enabled,
		MetricsEndpoint: appCfg.Metrics.Endpoint,
		BodySizeLimit:   appCfg.Server.BodySizeLimit,
	}

	// Initialize admin API and dashboard (behind separate feature flags)
	adminCfg := appCfg.Admin
	if !adminCfg.EndpointsEnabled && adminCfg.UIEnabled {
		slog.Warn("ADMIN_UI_ENABLED=true requires ADMIN_ENDPOINTS_ENABLED=true, forcing UI to disabled")
		adminCfg.UIEnabled = false
	}
	if adminCfg.EndpointsEnabled {
		serverCfg.AdminEndpointsEnabled = true
		serverCfg.AdminHandler = admin.NewHandler(registry, app.schema)
		slog.Info("admin API enabled", "api", "/admin/api/v1")

		if adminCfg.UIEnabled {
			// Rendered once at startup, so it stays out of the request metrics.
			dashHandler, err := dashboard.New(registry, viewschema.NewProvider(registry))
			if err != nil {
				slog.Warn("failed to initialize dashboard", "error", err)
			} else {
				serverCfg.AdminUIEnabled = true
				serverCfg.DashboardHandler = dashHandler
				slog.Info("admin UI enabled", "url", fmt.Sprintf("http://localhost:%s/admin/dashboard", appCfg.Server.Port))
			}
		}
	} else {
		slog.Info("admin API disabled")
	}

	app.server = server.New(serverCfg)

	return app, nil
}

// Registry returns the active channel type registry.
func (a *App) Registry() *channeltype.Registry {
	return a.registry
}

// Schema returns the list-view schema provider.
func (a *App) Schema() *viewschema.Provider {
	return a.schema
}

// Handler returns the HTTP handler, for use with httptest.
func (a *App) Handler() http.Handler {
	return a.server
}

// Start starts the HTTP server on the given address.
// This is a blocking call that returns when the server stops.
func (a *App) Start(addr string) error {
	if a.server == nil {
		return fmt.Errorf("server is not initialized")
	}
	slog.Info("starting server", "address", addr)
	if err := a.server.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server, honoring ctx, then closes the snapshot cache.
// It is idempotent; every step is attempted and failures are joined.
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownMu.Lock()
	if a.shutdown {
		a.shutdownMu.Unlock()
		return nil
	}
	a.shutdown = true
	a.shutdownMu.Unlock()

	slog.Info("shutting down application...")

	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Error("cache close error", "error", err)
			errs = append(errs, fmt.Errorf("cache close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	slog.Info("application shutdown complete")
	return nil
}

func loadRegistry(cfg config.ChannelTypesConfig) (*channeltype.Registry, error) {
	if cfg.File == "" {
		return channeltype.Default(), nil
	}
	return channeltype.LoadFile(cfg.File)
}

// checkDrift compares the registry with the snapshot stored by the previous
// run and stores the current one.
func checkDrift(ctx context.Context, c cache.Cache, registry *channeltype.Registry) {
	current := registry.Snapshot()

	previous, err := c.Get(ctx)

	switch {
	case err != nil:
		slog.Warn("failed to read channel type snapshot", "error", err)
	case previous == nil:
		slog.Info("no previous channel type snapshot", "fingerprint", current.Fingerprint)
	case previous.Fingerprint == current.Fingerprint:
		slog.Debug("channel type registry unchanged", "fingerprint", current.Fingerprint)
	default:
		diff := current.Diff(previous)
		slog.Warn("channel type registry changed",
			"previous_fingerprint", previous.Fingerprint,
			"fingerprint", current.Fingerprint,
			"previous_taken_at", previous.TakenAt,
			"added", diff.Added,
			"removed", diff.Removed,
			"changed", diff.Changed,
		)
	}

	if err := c.Set(ctx, current); err != nil {
		slog.Warn("failed to store channel type snapshot", "error", err)
	}
}

// logStartupInfo logs the application configuration on startup.
func (a *App) logStartupInfo(source string) {
	cfg := a.config

	if source != "" {
		slog.Info("config loaded", "file", source)
	}

	tableSource := "built-in"
	if cfg.ChannelTypes.File != "" {
		tableSource = cfg.ChannelTypes.File
	}
	slog.Info("channel type registry loaded", "source", tableSource, "entries", a.registry.Len())

	// Security warnings
	if cfg.Server.MasterKey == "" {
		slog.Warn("SECURITY WARNING: CONSOLE_MASTER_KEY not set - server running in UNSAFE MODE",
			"security_risk", "every caller without a viewer key is treated as admin",
			"recommendation", "set CONSOLE_MASTER_KEY environment variable to secure this console")
	} else {
		slog.Info("authentication enabled", "mode", "master_key", "viewer_keys", len(cfg.Server.ViewerKeys))
	}

	if cfg.Metrics.Enabled {
		slog.Info("prometheus metrics enabled", "endpoint", cfg.Metrics.Endpoint)
	} else {
		slog.Info("prometheus metrics disabled")
	}

	slog.Info("snapshot cache configured", "type", cfg.Cache.Type)
}
