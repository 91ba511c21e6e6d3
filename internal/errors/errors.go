package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GuiaError is the structured error type for multaguia.
// It provides rich context for error handling, logging, and user presentation.
type GuiaError struct {
	// Code is the unique error code (e.g., "ERR_301_STORE_UNAVAILABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Store, Validation, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *GuiaError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GuiaError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with GuiaError.
func (e *GuiaError) Is(target error) bool {
	if t, ok := target.(*GuiaError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *GuiaError) WithDetail(key, value string) *GuiaError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *GuiaError) WithSuggestion(suggestion string) *GuiaError {
	e.Suggestion = suggestion
	return e
}

// New creates a new GuiaError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *GuiaError {
	return &GuiaError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a GuiaError from an existing error.
// The error's message becomes the GuiaError message.
func Wrap(code string, err error) *GuiaError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ValidationError creates an input validation error.
func ValidationError(message string, cause error) *GuiaError {
	return New(ErrCodeInputTooShort, message, cause)
}

// StoreError classifies a backing-store failure into the taxonomy.
// Context cancellation and deadline errors map to the timeout code;
// everything else from database/sql maps to the unavailable code.
func StoreError(err error) *GuiaError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return New(ErrCodeStoreTimeout, "backing store timed out", err)
	case errors.Is(err, context.Canceled):
		return New(ErrCodeStoreTimeout, "backing store call canceled", err)
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return New(ErrCodeStoreUnavailable, "backing store connection lost", err)
	default:
		return New(ErrCodeStoreQuery, err.Error(), err)
	}
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *GuiaError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a GuiaError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ge *GuiaError
	if errors.As(err, &ge) {
		return ge.Retryable
	}
	return false
}

// GetCode extracts the error code from a GuiaError anywhere in the chain.
// Returns empty string if no GuiaError is found.
func GetCode(err error) string {
	var ge *GuiaError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

// GetCategory extracts the category from a GuiaError anywhere in the chain.
// Returns empty string if no GuiaError is found.
func GetCategory(err error) Category {
	var ge *GuiaError
	if errors.As(err, &ge) {
		return ge.Category
	}
	return ""
}
