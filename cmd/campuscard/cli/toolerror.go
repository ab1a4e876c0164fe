// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/mohamed20o03/web/api"
)

// ErrorCategory classifies command errors so that scripts can make
// decisions (retry, fix input, log in again) without parsing error
// message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required parameters, wrong argument count, unparseable
	// values, or input the backend rejected.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the caller lacks permission or has no
	// valid session.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the operation conflicts with existing
	// state.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates a temporary failure: network error,
	// timeout, server error. The caller should back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error. The caller should
	// report the error rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// exitCodes are the process exit statuses per category.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   3,
	CategoryForbidden:  4,
	CategoryConflict:   5,
	CategoryTransient:  6,
	CategoryInternal:   1,
}

// ToolError is a categorized error returned by CLI commands.
//
// ToolError wraps an inner error, preserving the full error chain for
// debugging while adding category metadata. Use the category-specific
// constructors (Validation, NotFound, etc.) rather than constructing
// ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode is the process exit status for the category.
func (e *ToolError) ExitCode() int {
	if code, ok := exitCodes[e.Category]; ok {
		return code
	}
	return 1
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the caller lacks permission.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with existing state.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// FromAPIError categorizes a client failure. The message is the
// user-facing one from the backend; the full chain stays reachable
// through Unwrap. Errors that are already ToolErrors pass through, and
// nil stays nil.
func FromAPIError(err error) error {
	if err == nil {
		return nil
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return err
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return &ToolError{Category: CategoryInternal, Err: err}
	}

	var category ErrorCategory
	message := apiErr.Message
	switch apiErr.Kind {
	case api.KindValidation, api.KindPayloadTooLarge:
		category = CategoryValidation
		if fields := apiErr.FieldErrors(); len(fields) > 0 {
			message += formatFieldErrors(fields)
		}
	case api.KindUnauthorized:
		category = CategoryForbidden
		message += " (session cleared; run 'campuscard login')"
	case api.KindForbidden:
		category = CategoryForbidden
	case api.KindNotFound:
		category = CategoryNotFound
	case api.KindNetwork, api.KindServer:
		category = CategoryTransient
	default:
		category = CategoryInternal
	}
	return &ToolError{Category: category, Err: &apiMessageError{message: message, err: err}}
}

// apiMessageError shows the backend's message while keeping the
// original error in the chain.
type apiMessageError struct {
	message string
	err     error
}

func (e *apiMessageError) Error() string { return e.message }
func (e *apiMessageError) Unwrap() error { return e.err }
