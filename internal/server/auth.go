package server

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"gwconsole/internal/core"
	"gwconsole/internal/viewschema"
)

// AuthConfig lists the accepted bearer keys.
type AuthConfig struct {
	// MasterKey authenticates admins. Empty disables authentication and every
	// caller is an admin, except one presenting a viewer key.
	MasterKey string
	// ViewerKeys authenticate standard users.
	ViewerKeys []string
	// SkipPaths are served without authentication. Entries ending in "/" match as prefixes.
	SkipPaths []string
}

// AuthMiddleware validates the bearer key and records the caller's role in
// the request context (core.WithCallerRole).
func AuthMiddleware(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.MasterKey == "" {
				if isViewer(bearerToken(c), cfg.ViewerKeys) {
					return next(withRole(c, viewschema.RoleStandardUser))
				}
				return next(withRole(c, viewschema.RoleAdmin))
			}

			if skipAuth(c.Request().URL.Path, cfg.SkipPaths) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return authError(c, "missing authorization header")
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				return authError(c, "invalid authorization header format, expected 'Bearer <token>'")
			}

			token := strings.TrimPrefix(authHeader, prefix)
			if keyMatches(token, cfg.MasterKey) {
				return next(withRole(c, viewschema.RoleAdmin))
			}
			if isViewer(token, cfg.ViewerKeys) {
				return next(withRole(c, viewschema.RoleStandardUser))
			}
			return authError(c, "invalid api key")
		}
	}
}

func withRole(c echo.Context, role viewschema.Role) echo.Context {
	req := c.Request()
	c.SetRequest(req.WithContext(core.WithCallerRole(req.Context(), string(role))))
	return c
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

func isViewer(token string, keys []string) bool {
	for _, k := range keys {
		if keyMatches(token, k) {
			return true
		}
	}
	return false
}

func keyMatches(token, key string) bool {
	return key != "" && subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1
}

func skipAuth(p string, skip []string) bool {
	for _, s := range skip {
		if p == s || (strings.HasSuffix(s, "/") && strings.HasPrefix(p, s)) {
			return true
		}
	}
	return false
}

func authError(c echo.Context, message string) error {
	apiErr := core.NewAuthenticationError(message)
	return c.JSON(apiErr.HTTPStatusCode(), apiErr.ToJSON())
}
