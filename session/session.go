// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Roles assigned by the backend. Comparisons are case-insensitive: the
// login endpoint reports roles in lower case.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// Approval states of a student account.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Session is the authenticated identity of the current user. The JSON
// layout is the persisted form and is shared with the web client.
type Session struct {
	Token     string `json:"token"`
	UserID    int64  `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && strings.EqualFold(s.Role, RoleAdmin)
}

// IsApproved reports whether the account status is APPROVED.
func (s *Session) IsApproved() bool {
	return s != nil && strings.EqualFold(s.Status, StatusApproved)
}

// DisplayName is "First Last", falling back to the email address.
func (s *Session) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return s.Email
	}
	return name
}

// UnmarshalJSON accepts any JSON object. Fields with unexpected types
// are left empty rather than failing the whole value, so a session
// written by another client version still loads. userId may be a number
// or a numeric string.
func (s *Session) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("session: value is null")
	}

	*s = Session{
		Token:     stringField(fields["token"]),
		Email:     stringField(fields["email"]),
		FirstName: stringField(fields["firstName"]),
		LastName:  stringField(fields["lastName"]),
		Role:      stringField(fields["role"]),
		Status:    stringField(fields["status"]),
	}

	if raw, ok := fields["userId"]; ok {
		var number json.Number
		if err := json.Unmarshal(raw, &number); err == nil {
			s.UserID, _ = number.Int64()
		} else if id, err := strconv.ParseInt(stringField(raw), 10, 64); err == nil {
			s.UserID = id
		}
	}
	return nil
}

func stringField(raw json.RawMessage) string {
	var value string
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return ""
	}
	return value
}

// clone returns an independent copy, or nil for nil.
func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
