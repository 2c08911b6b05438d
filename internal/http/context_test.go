package http

import (
	"context"
	"log/slog"
	"testing"
)

func TestUsernameContextRoundTrip(t *testing.T) {
	ctx := ContextWithUsername(context.Background(), "jdoe")

	username, ok := UsernameFromContext(ctx)
	if !ok || username != "jdoe" {
		t.Fatalf("UsernameFromContext = %q, %v, want jdoe, true", username, ok)
	}
}

func TestUsernameFromBareContext(t *testing.T) {
	if username, ok := UsernameFromContext(context.Background()); ok {
		t.Fatalf("expected no username on a bare context, got %q", username)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := ContextWithLogger(context.Background(), logger)

	if got := LoggerFromContext(ctx); got != logger {
		t.Fatalf("expected the attached logger back, got %v", got)
	}
}

func TestLoggerFromBareContext(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil for a bare context, got %v", got)
	}
}

func TestContextWithNilLogger(t *testing.T) {
	ctx := ContextWithLogger(context.Background(), nil)
	if got := LoggerFromContext(ctx); got != nil {
		t.Fatalf("expected nil logger to not be attached, got %v", got)
	}
}
