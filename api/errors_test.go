// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeKinds(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{400, KindValidation},
		{401, KindUnauthorized},
		{403, KindForbidden},
		{404, KindNotFound},
		{413, KindPayloadTooLarge},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
		{599, KindServer},
		{302, KindUnknown},
		{409, KindUnknown},
		{418, KindUnknown},
		{429, KindUnknown},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.status), func(t *testing.T) {
			apiErr := Normalize(test.status, ParsePayload([]byte(`{"message":"m"}`)))
			if apiErr.Kind != test.want {
				t.Errorf("Kind = %q, want %q", apiErr.Kind, test.want)
			}
			if apiErr.StatusCode != test.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, test.status)
			}
		})
	}
}

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message wins", 400, `{"message":"Invalid email","error":"Bad Request"}`, "Invalid email"},
		{"error when no message", 403, `{"error":"Forbidden"}`, "Forbidden"},
		{"email field fallback", 400, `{"email":"Email already registered"}`, "Email already registered"},
		{"error beats email", 400, `{"error":"e","email":"x"}`, "e"},
		{"raw text", 404, `Not Found`, "Not Found"},
		{"empty body", 404, ``, "Request failed"},
		{"json null", 400, `null`, "Request failed"},
		{"json array", 400, `["a"]`, "Request failed"},
		{"empty message skipped", 400, `{"message":"","error":"Bad Request"}`, "Bad Request"},
		{"non-string message skipped", 400, `{"message":42,"error":"Bad Request"}`, "Bad Request"},
		{"no known fields", 409, `{"detail":"x"}`, "Request failed"},
		{"server overrides body", 500, `{"message":"NullPointerException"}`, "Server error"},
		{"server with raw body", 503, `<html>down</html>`, "Server error"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			apiErr := Normalize(test.status, ParsePayload([]byte(test.body)))
			if apiErr.Message != test.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, test.want)
			}
		})
	}
}

func TestNormalizeKeepsBody(t *testing.T) {
	apiErr := Normalize(400, ParsePayload([]byte(`{"message":"bad","path":"/api/signup"}`)))
	if path, _ := apiErr.Body.Field("path"); path != "/api/signup" {
		t.Errorf("Body path = %q, want /api/signup", path)
	}
}

func TestErrorString(t *testing.T) {
	apiErr := Normalize(404, ParsePayload([]byte(`{"message":"User not found"}`)))
	if got, want := apiErr.Error(), "campuscard: notFound (404): User not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	network := networkError(errors.New("connection refused"))
	if got, want := network.Error(), "campuscard: network: Network error: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFieldErrors(t *testing.T) {
	apiErr := Normalize(400, ParsePayload([]byte(`{
		"status": 400,
		"message": "Validation failed",
		"errors": {"email": "Email must be a PSU address", "year": "must be positive"}
	}`)))
	fields := apiErr.FieldErrors()
	if len(fields) != 2 || fields["email"] != "Email must be a PSU address" {
		t.Errorf("FieldErrors() = %v", fields)
	}

	if fields := Normalize(400, RawPayload("bad")).FieldErrors(); fields != nil {
		t.Errorf("FieldErrors() on raw body = %v, want nil", fields)
	}
}

func TestKindHelpers(t *testing.T) {
	wrapped := fmt.Errorf("api: get profile: %w", Normalize(401, Payload{}))
	if !IsKind(wrapped, KindUnauthorized) {
		t.Error("IsKind(wrapped 401, unauthorized) = false")
	}
	if IsKind(wrapped, KindForbidden) {
		t.Error("IsKind(wrapped 401, forbidden) = true")
	}
	if kind := KindOf(errors.New("plain")); kind != "" {
		t.Errorf("KindOf(plain error) = %q, want empty", kind)
	}
}
