package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "sheetcli/internal/errors"
)

// GenerateTraceID creates a new unique run ID using UUID v4
func GenerateTraceID() string {
	return uuid.New().String()
}

// ContextWithTraceID creates a new context with a generated trace ID
func ContextWithTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, GenerateTraceID())
}

// EnsureTraceID ensures the context has a trace ID, generating one if needed
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) == "" {
		return ContextWithTraceID(ctx)
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}

// WithFile creates a logger tagged with the file being processed
func WithFile(logger *slog.Logger, path string) *slog.Logger {
	return logger.With(slog.String("file", path))
}

// LogError logs err at error level with its AppError type and context
// flattened into attributes.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	attrs := apperrors.LogAttrs(err)
	logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// LogWarning logs a non-fatal AppError, such as a conversion warning.
func LogWarning(ctx context.Context, logger *slog.Logger, msg string, err error) {
	attrs := apperrors.LogAttrs(err)
	logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}
