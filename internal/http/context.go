package http

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	usernameContextKey contextKey = "username"
	loggerContextKey   contextKey = "logger"
)

// ContextWithUsername injects the username resolved from the request path.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}

// UsernameFromContext extracts a username previously associated with the context.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameContextKey).(string)
	return username, ok
}

// ContextWithLogger attaches the request-scoped logger minted by the
// RequestLogger middleware, so handler records carry the request id.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// LoggerFromContext extracts a request-scoped logger if one was attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerContextKey).(*slog.Logger)
	return logger
}
