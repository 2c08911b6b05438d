package http

import (
	"context"
	"log/slog"
	"net/http"
)

// responder writes the plain-text failure responses this service emits.
// Success responses carry calendar payloads and are written by the handler
// itself.
type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

// writeError logs the underlying error and sends the given message as a
// plain-text response. Internal detail never reaches the caller.
func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}
	http.Error(w, message, status)
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
