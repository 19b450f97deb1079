// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/hostel/lib/datfile"
	"github.com/bureau-foundation/hostel/lib/registry"
	"github.com/bureau-foundation/hostel/lib/secret"
)

// ErrorCategory classifies command errors so that scripts can make
// decisions (retry, fix input, escalate) without parsing error text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required flags, wrong argument count, unparseable values,
	// field values wider than their record slot.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced record does not exist:
	// unknown student ID, unknown ticket ID.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the operation is not allowed in the
	// current state: a ticket against a deactivated student, a wrong
	// admin secret.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the operation conflicts with existing
	// state: duplicate student ID, a full collection.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryInternal indicates an unexpected error: I/O failures,
	// corrupt record files. The caller should report the error rather
	// than retry.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands.
//
// ToolError wraps an inner error, preserving the full error chain for
// errors.Is while adding category metadata. Use the category-specific
// constructors (Validation, NotFound, etc.) rather than constructing
// ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional next step shown after the message.
	Hint string
}

// Error returns the underlying error message, followed by the hint
// after a blank line when one is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced record does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the operation is not allowed.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with existing state.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// StoreError wraps an error from the record store in the ToolError
// category matching its sentinel. Errors that are already ToolErrors
// and nil pass through unchanged.
func StoreError(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}

	category := CategoryInternal
	switch {
	case errors.Is(err, registry.ErrNotFound):
		category = CategoryNotFound
	case errors.Is(err, registry.ErrDuplicateID), errors.Is(err, registry.ErrCapacityExceeded):
		category = CategoryConflict
	case errors.Is(err, registry.ErrStudentInactive), errors.Is(err, secret.ErrAccessDenied):
		category = CategoryForbidden
	case errors.Is(err, registry.ErrFieldTooLong), errors.Is(err, registry.ErrFieldNotUpdatable):
		category = CategoryValidation
	case errors.Is(err, datfile.ErrPersistenceUnavailable), errors.Is(err, datfile.ErrCorrupt):
		category = CategoryInternal
	}
	return &ToolError{Category: category, Err: err}
}

// CategoryOf returns the category of err, or CategoryInternal when err
// carries none.
func CategoryOf(err error) ErrorCategory {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category
	}
	return CategoryInternal
}
