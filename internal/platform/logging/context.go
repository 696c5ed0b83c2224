package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext extracts the logger from context.
// Returns the default logger if no logger is found or ctx is nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// enrich returns a context whose logger carries one extra attribute.
func enrich(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}

// WithRequestID returns a context whose logger carries the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return enrich(ctx, "request_id", requestID)
}

// WithTraceID returns a context whose logger carries the trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return enrich(ctx, "trace_id", traceID)
}

// WithCorrelationID returns a context whose logger carries the correlation ID.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return enrich(ctx, "correlation_id", correlationID)
}

// SetDefault sets the default logger used when no logger is in context.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
