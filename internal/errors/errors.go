// Package errors provides the error taxonomy for the compforge CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrConfig indicates a malformed or invalid configuration file.
	ErrConfig = errors.New("configuration error")

	// ErrValidation indicates invalid user input, such as a component name
	// in an unsupported case.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a configuration, component or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrExists indicates the target of an operation already exists.
	ErrExists = errors.New("already exists")

	// ErrCancelled indicates the user dismissed a prompt. Commands treat it
	// as "nothing happened", not as a failure.
	ErrCancelled = errors.New("cancelled")

	// ErrPartial indicates an operation finished with some files failed.
	ErrPartial = errors.New("partially completed")
)

// DetailError is an error carrying everything needed to show it to the
// user: what went wrong, where, and what to do about it.
type DetailError struct {
	// Type is the error category, e.g. "invalid configuration".
	Type string

	// Message describes this occurrence.
	Message string

	// Location is the file or directory the error refers to.
	Location string

	// Field is the configuration field at fault.
	Field string

	// Details lists individual problems collected before reporting.
	Details []string

	// Hint suggests a fix.
	Hint string

	// Cause is the sentinel or underlying error.
	Cause error
}

// Error renders the category, location, message, collected details and
// hint, one per line.
func (e *DetailError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Error: %s\n", e.Type)
	if e.Location != "" {
		fmt.Fprintf(&b, "  Location: %s\n", e.Location)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "  Field: %s\n", e.Field)
	}

	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	for _, d := range e.Details {
		fmt.Fprintf(&b, "    - %s\n", d)
	}

	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

func newDetail(cause error, typ, message, location, hint string) *DetailError {
	return &DetailError{Type: typ, Message: message, Location: location, Hint: hint, Cause: cause}
}

// NewValidationError reports invalid user input, such as a component name.
func NewValidationError(message, location, field, hint string) error {
	e := newDetail(ErrValidation, "validation failed", message, location, hint)
	e.Field = field
	return e
}

// NewConfigError reports an invalid configuration file with every problem
// found in it.
func NewConfigError(message, location string, details []string, hint string) error {
	e := newDetail(ErrConfig, "invalid configuration", message, location, hint)
	e.Details = details
	return e
}

// NewNotFoundError reports a missing configuration, component or file.
func NewNotFoundError(message, location, hint string) error {
	return newDetail(ErrNotFound, "not found", message, location, hint)
}

// NewExistsError reports a target that already exists.
func NewExistsError(message, location, hint string) error {
	return newDetail(ErrExists, "target exists", message, location, hint)
}

// Wrap annotates a sentinel error with a message.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
