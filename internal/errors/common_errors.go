package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFileNotFound      ErrorType = "FILE_NOT_FOUND"
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeInvalidColumn     ErrorType = "INVALID_COLUMN"
	ErrTypeConversion        ErrorType = "CONVERSION"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeStorage           ErrorType = "STORAGE"
	ErrTypeValidation        ErrorType = "VALIDATION"
	ErrTypeConfig            ErrorType = "CONFIG"
	ErrTypeUsage             ErrorType = "USAGE"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError by type, so a bare &AppError{Type: ...} can be
// used as a target for errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewFileNotFoundError reports an input path that does not exist.
func NewFileNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeFileNotFound, fmt.Sprintf("file not found: %s", path), cause).
		WithContext("path", path)
}

// NewUnsupportedFormatError reports a file extension no reader or writer handles.
func NewUnsupportedFormatError(path, ext string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat, fmt.Sprintf("unsupported file format %q", ext), nil).
		WithContext("path", path).
		WithContext("extension", ext)
}

// NewInvalidColumnError reports a column name absent from a table.
func NewInvalidColumnError(column, table string) *AppError {
	msg := fmt.Sprintf("column %q not found", column)
	if table != "" {
		msg = fmt.Sprintf("column %q not found in %s", column, table)
	}
	return NewAppError(ErrTypeInvalidColumn, msg, nil).
		WithContext("column", column).
		WithContext("table", table)
}

// NewConversionWarning describes a value that could not be coerced. It is
// meant to be logged, not returned.
func NewConversionWarning(column string, row int, value string, cause error) *AppError {
	return NewAppError(ErrTypeConversion, fmt.Sprintf("cannot convert %q", value), cause).
		WithContext("column", column).
		WithContext("row", row)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewUsageError reports missing or malformed command line arguments.
func NewUsageError(message string) *AppError {
	return NewAppError(ErrTypeUsage, message, nil)
}

// TypeOf returns the type of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

func IsFileNotFound(err error) bool      { return TypeOf(err) == ErrTypeFileNotFound }
func IsUnsupportedFormat(err error) bool { return TypeOf(err) == ErrTypeUnsupportedFormat }
func IsInvalidColumn(err error) bool     { return TypeOf(err) == ErrTypeInvalidColumn }
func IsUsage(err error) bool             { return TypeOf(err) == ErrTypeUsage }
