// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mohamed20o03/web/api"
)

func TestToolErrorConstructors(t *testing.T) {
	tests := []struct {
		err      *ToolError
		category ErrorCategory
		code     int
	}{
		{Validation("bad %s", "input"), CategoryValidation, 2},
		{NotFound("missing"), CategoryNotFound, 3},
		{Forbidden("nope"), CategoryForbidden, 4},
		{Conflict("exists"), CategoryConflict, 5},
		{Transient("later"), CategoryTransient, 6},
		{Internal("bug"), CategoryInternal, 1},
	}
	for _, test := range tests {
		if test.err.Category != test.category {
			t.Errorf("%v: category = %q, want %q", test.err, test.err.Category, test.category)
		}
		if test.err.ExitCode() != test.code {
			t.Errorf("%v: exit code = %d, want %d", test.err, test.err.ExitCode(), test.code)
		}
	}
	if got := Validation("bad %s", "input").Error(); got != "bad input" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromAPIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		category ErrorCategory
		contains string
	}{
		{"validation", 400, `{"message":"Invalid email"}`, CategoryValidation, "Invalid email"},
		{"field errors", 400, `{"message":"Validation failed","errors":{"year":"must be positive","email":"taken"}}`,
			CategoryValidation, "Validation failed\n  email: taken\n  year: must be positive"},
		{"too large", 413, ``, CategoryValidation, "Request failed"},
		{"unauthorized", 401, `{"message":"Token expired"}`, CategoryForbidden, "campuscard login"},
		{"forbidden", 403, `{"error":"Forbidden"}`, CategoryForbidden, "Forbidden"},
		{"not found", 404, `{"message":"User not found"}`, CategoryNotFound, "User not found"},
		{"server", 500, ``, CategoryTransient, "Server error"},
		{"unknown", 409, `{"message":"dup"}`, CategoryInternal, "dup"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			source := fmt.Errorf("api: op: %w", api.Normalize(test.status, api.ParsePayload([]byte(test.body))))
			err := FromAPIError(source)

			var toolErr *ToolError
			if !errors.As(err, &toolErr) {
				t.Fatalf("FromAPIError returned %T", err)
			}
			if toolErr.Category != test.category {
				t.Errorf("category = %q, want %q", toolErr.Category, test.category)
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("message %q missing %q", err.Error(), test.contains)
			}
			var apiErr *api.Error
			if !errors.As(err, &apiErr) {
				t.Error("api.Error not reachable through the chain")
			}
		})
	}
}

func TestFromAPIErrorPassThrough(t *testing.T) {
	if FromAPIError(nil) != nil {
		t.Error("FromAPIError(nil) != nil")
	}
	original := NotFound("gone")
	if got := FromAPIError(original); got != error(original) {
		t.Error("ToolError was rewrapped")
	}
	var toolErr *ToolError
	if !errors.As(FromAPIError(errors.New("disk full")), &toolErr) || toolErr.Category != CategoryInternal {
		t.Error("plain error not categorized internal")
	}
	network := FromAPIError(fmt.Errorf("wrap: %w", &api.Error{Kind: api.KindNetwork, Message: "Network error"}))
	if !errors.As(network, &toolErr) || toolErr.Category != CategoryTransient {
		t.Errorf("network error category = %v", network)
	}
}
