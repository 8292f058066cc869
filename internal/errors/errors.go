// Package errors provides the structured error type used across Alder.
//
// An AlderError carries a stable code (e.g. "A201"), a category that maps
// to the pipeline stage that produced it, a short message, and an optional
// hint and wrapped cause. Codes are stable across releases so callers can
// match on them.
package errors

import "fmt"

// Category identifies the pipeline stage an error originated from.
type Category string

const (
	CategoryDiff     Category = "diff"
	CategoryLocate   Category = "locate"
	CategoryApply    Category = "apply"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
)

// AlderError is a structured error with a stable code and category.
type AlderError struct {
	// Code is a unique error identifier (e.g., "A201").
	Code string

	// Category is the pipeline stage (diff, locate, apply, protocol, config).
	Category Category

	// Message is a short description of the error.
	Message string

	// Hint suggests how to fix the error, when a fix is known.
	Hint string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *AlderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AlderError) Unwrap() error {
	return e.Wrapped
}

// WithHint adds a fix suggestion to the error.
func (e *AlderError) WithHint(h string) *AlderError {
	e.Hint = h
	return e
}

// Wrap wraps another error.
func (e *AlderError) Wrap(err error) *AlderError {
	e.Wrapped = err
	return e
}

// New creates a new AlderError.
func New(code string, category Category, format string, args ...any) *AlderError {
	return &AlderError{
		Code:     code,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Invariant reports a violated engine invariant. These are programming
// errors, not runtime-recoverable conditions; callers panic with the
// returned error when invariant checking is enabled.
func Invariant(category Category, format string, args ...any) *AlderError {
	return New("A001", category, format, args...).
		WithHint("this indicates a bug in the reconciler, not in application code")
}
