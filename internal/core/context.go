package core

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	requestIDKey  contextKey = "request-id"
	callerRoleKey contextKey = "caller-role"
)

// WithRequestID returns a new context with the request ID attached.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithCallerRole records the role the authentication layer resolved for the request.
func WithCallerRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, callerRoleKey, role)
}

// GetCallerRole returns the role set by WithCallerRole, or "" when unauthenticated.
func GetCallerRole(ctx context.Context) string {
	if v, ok := ctx.Value(callerRoleKey).(string); ok {
		return v
	}
	return ""
}
