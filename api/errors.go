// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "notFound"
	KindPayloadTooLarge Kind = "payloadTooLarge"
	KindServer          Kind = "server"
	KindNetwork         Kind = "network"
	KindUnknown         Kind = "unknown"
)

// Fixed messages.
const (
	defaultMessage = "Request failed"
	serverMessage  = "Server error"
	networkMessage = "Network error"
)

// Error is a normalized request failure. Use errors.As to inspect it:
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) && apiErr.Kind == api.KindNotFound { ... }
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Message is suitable for showing to the user.
	Message string
	// StatusCode is the HTTP status, or 0 for network failures.
	StatusCode int
	// Body is the response body as received.
	Body Payload
	// Err is the transport error behind a network failure.
	Err error
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		if e.Err != nil {
			return fmt.Sprintf("campuscard: %s: %s: %v", e.Kind, e.Message, e.Err)
		}
		return fmt.Sprintf("campuscard: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("campuscard: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// FieldErrors returns the per-field messages of a validation response
// ({"errors": {"email": "..."}}), or nil.
func (e *Error) FieldErrors() map[string]string {
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if e.Body.Kind() != PayloadJSON || json.Unmarshal(e.Body.JSON(), &body) != nil {
		return nil
	}
	return body.Errors
}

// Normalize maps a non-success status and its body to an *Error. It is
// total: every status yields exactly one Kind.
//
// The message is the first non-empty string among the body's "message",
// "error", "email" (some backend handlers report failures there), and
// "raw" (non-JSON text) fields, else "Request failed". Statuses of 500
// and above always carry "Server error".
func Normalize(status int, body Payload) *Error {
	message := pickMessage(body)

	var kind Kind
	switch {
	case status == http.StatusBadRequest:
		kind = KindValidation
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusForbidden:
		kind = KindForbidden
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusRequestEntityTooLarge:
		kind = KindPayloadTooLarge
	case status >= 500:
		kind = KindServer
		message = serverMessage
	default:
		kind = KindUnknown
	}

	return &Error{Kind: kind, Message: message, StatusCode: status, Body: body}
}

func pickMessage(body Payload) string {
	for _, field := range []string{"message", "error", "email", "raw"} {
		if value, ok := body.Field(field); ok && value != "" {
			return value
		}
	}
	return defaultMessage
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: networkMessage, Err: err}
}

// KindOf returns the Kind of an *Error in err's chain, or "" if there is
// none.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
