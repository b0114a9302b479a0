// Package context carries request metadata from the HTTP layer into the
// usecases without leaking echo types below the delivery layer.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header used to propagate request ids.
const HeaderXRequestID = echo.HeaderXRequestID

const (
	echoKeyRequestID   = "request_id"
	maxRequestIDLength = 64
)

type scopeKey struct{}

// Scope is the per-request metadata stored on a context.Context.
type Scope struct {
	RequestID string
	Logger    *slog.Logger
}

// WithScope attaches the scope to ctx.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFrom returns the scope attached to ctx, if any.
func ScopeFrom(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(Scope)

	return scope, ok
}

// WithRequestID sets the request id of the scope on ctx, keeping its logger.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	scope, _ := ScopeFrom(ctx)
	scope.RequestID = requestID

	return WithScope(ctx, scope)
}

// GetRequestIDFromContext returns the request id on ctx or "".
func GetRequestIDFromContext(ctx context.Context) string {
	scope, _ := ScopeFrom(ctx)

	return scope.RequestID
}

// GetLoggerOrDefault returns the request-scoped logger, falling back to fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if scope, ok := ScopeFrom(ctx); ok && scope.Logger != nil {
		return scope.Logger
	}

	return fallback
}

// SetRequestID records the request id on the echo context for the response writers.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestID returns the request id recorded by SetRequestID or "".
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// AcceptableRequestID reports whether a client supplied id may be echoed back.
// Only short tokens of letters, digits, '-', '_' and '.' are accepted so the
// value is safe to put in logs and response headers.
func AcceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}

	return true
}
