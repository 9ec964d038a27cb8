package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateTraceID returns a random UUID used as a request or trace ID
func GenerateTraceID() string {
	return uuid.New().String()
}

// EnsureTraceID returns ctx unchanged when it already carries a trace ID.
// Calls that bypass the HTTP middleware get a fresh one so their log
// records can still be correlated.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, GenerateTraceID())
}

// WithComponent tags every record of the returned logger with component
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}

// WithError attaches err as the "error" attribute; a nil err returns logger.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With(slog.String("error", err.Error()))
}
