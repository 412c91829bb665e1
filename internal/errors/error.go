package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryRender Category = "render"
	CategoryBuild  Category = "build"
	CategoryCLI    Category = "cli"
)

// HatchError is a structured error with a code, suggestion, and documentation.
type HatchError struct {
	// Code is a unique error identifier (e.g., "E110").
	Code string

	// Category is the error type (config, build, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HatchError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HatchError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HatchError) WithSuggestion(s string) *HatchError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *HatchError) WithDetail(d string) *HatchError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with fmt.Sprintf formatting.
func (e *HatchError) WithDetailf(format string, args ...any) *HatchError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *HatchError) Wrap(err error) *HatchError {
	e.Wrapped = err
	return e
}

// New creates a HatchError from a registered error code.
func New(code string) *HatchError {
	template, ok := registry[code]
	if !ok {
		return &HatchError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &HatchError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new HatchError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HatchError {
	return &HatchError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a HatchError.
// Errors that already are (or wrap) a HatchError are returned as is.
func FromError(err error, code string) *HatchError {
	if err == nil {
		return nil
	}
	var he *HatchError
	if errors.As(err, &he) {
		return he
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first HatchError in err's chain, or "".
func Code(err error) string {
	var he *HatchError
	if errors.As(err, &he) {
		return he.Code
	}
	return ""
}
