package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

// loggerKey is the context key for the logger.
const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// withField adds a single string field to the logger in the context.
func withField(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithKind adds the template kind being converted.
func WithKind(ctx context.Context, kind string) context.Context {
	return withField(ctx, "kind", kind)
}

// WithFile adds the file being read or written.
func WithFile(ctx context.Context, path string) context.Context {
	return withField(ctx, "file", path)
}

// WithRunID adds the conversion run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return withField(ctx, "run_id", id)
}

