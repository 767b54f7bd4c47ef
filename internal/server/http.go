package server

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gwconsole/config"
	"gwconsole/internal/admin"
	"gwconsole/internal/admin/dashboard"
	"gwconsole/internal/core"
)

const defaultMetricsPath = "/metrics"

// Server wraps the Echo server
type Server struct {
	echo *echo.Echo
}

// Config holds server configuration options
type Config struct {
	MasterKey             string   // Optional: Master key for admin authentication
	ViewerKeys            []string // Keys granting the standard_user role
	MetricsEnabled        bool     // Whether to expose Prometheus metrics endpoint
	MetricsEndpoint       string   // HTTP path for metrics endpoint (default: /metrics)
	BodySizeLimit         int64    // Max request body size in bytes (default: 1MB)
	AdminEndpointsEnabled bool
	AdminUIEnabled        bool
	AdminHandler          *admin.Handler
	DashboardHandler      *dashboard.Handler
}

// New creates a new HTTP server
func New(cfg *Config) *Server {
	if cfg == nil {
		cfg = &Config{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Build list of paths that skip authentication
	authSkipPaths := []string{"/health"}

	metricsPath := ""
	if cfg.MetricsEnabled {
		metricsPath = resolveMetricsPath(cfg.MetricsEndpoint)
		authSkipPaths = append(authSkipPaths, metricsPath)
	}
	if cfg.AdminUIEnabled && cfg.DashboardHandler != nil {
		authSkipPaths = append(authSkipPaths, "/admin/dashboard", "/admin/static/")
	}

	// Global middleware stack (order matters)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(core.WithRequestID(req.Context(), id)))
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	bodySizeLimit := config.DefaultBodySizeLimit
	if cfg.BodySizeLimit > 0 {
		bodySizeLimit = cfg.BodySizeLimit
	}
	e.Use(middleware.BodyLimit(strconv.FormatInt(bodySizeLimit, 10)))

	e.Use(AuthMiddleware(AuthConfig{
		MasterKey:  cfg.MasterKey,
		ViewerKeys: cfg.ViewerKeys,
		SkipPaths:  authSkipPaths,
	}))

	// Public routes
	e.GET("/health", Health)
	if metricsPath != "" {
		e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))
	}

	// Admin API routes
	if cfg.AdminEndpointsEnabled && cfg.AdminHandler != nil {
		h := cfg.AdminHandler
		g := e.Group("/admin/api/v1")
		g.GET("/overview", h.Overview)
		g.GET("/channel-types", h.ListChannelTypes)
		g.GET("/channel-types/legend", h.Legend)
		g.GET("/channel-types/:id", h.GetChannelType)
		g.GET("/views/:entity/columns", h.Columns)
		g.POST("/views/:entity/rows", h.RenderRows)
	}

	// Admin dashboard
	if cfg.AdminUIEnabled && cfg.DashboardHandler != nil {
		e.GET("/admin/dashboard", cfg.DashboardHandler.Index)
		e.GET("/admin/static/*", cfg.DashboardHandler.Static)
	}

	return &Server{echo: e}
}

// resolveMetricsPath normalizes the configured endpoint. Paths that would
// shadow health or admin routes fall back to /metrics.
func resolveMetricsPath(endpoint string) string {
	if endpoint == "" {
		return defaultMetricsPath
	}
	p := path.Clean("/" + endpoint)
	if p == "/" || p == "/health" || p == "/admin" || strings.HasPrefix(p, "/admin/") {
		slog.Warn("metrics endpoint conflicts with a reserved route, using default",
			"configured", endpoint, "path", defaultMetricsPath)
		return defaultMetricsPath
	}
	return p
}

// Start starts the HTTP server on the given address
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP implements the http.Handler interface, allowing Server to be used with httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
