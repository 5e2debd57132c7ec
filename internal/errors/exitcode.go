package errors

import (
	"context"
	"errors"
	"log/slog"
)

// Process exit codes returned by the command line tools.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitUsage             = 2
	ExitFileNotFound      = 3
	ExitUnsupportedFormat = 4
	ExitInvalidColumn     = 5
	ExitInterrupted       = 130
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ExitInterrupted
	}

	switch TypeOf(err) {
	case ErrTypeUsage:
		return ExitUsage
	case ErrTypeFileNotFound:
		return ExitFileNotFound
	case ErrTypeUnsupportedFormat:
		return ExitUnsupportedFormat
	case ErrTypeInvalidColumn:
		return ExitInvalidColumn
	default:
		return ExitFailure
	}
}

// LogAttrs flattens an error into slog attributes, including the AppError
// type and context when present.
func LogAttrs(err error) []slog.Attr {
	attrs := []slog.Attr{slog.String("error", err.Error())}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return attrs
	}
	attrs = append(attrs, slog.String("error_type", string(appErr.Type)))
	for k, v := range appErr.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
