// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"fmt"
	"strings"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects field errors in the order they were checked.
type Errors struct {
	Fields []FieldError
}

// Check records err against field when err is non-nil.
func (e *Errors) Check(field string, err error) {
	if err != nil {
		e.Fields = append(e.Fields, FieldError{Field: field, Message: err.Error()})
	}
}

// Err returns e when any field failed, nil otherwise.
func (e *Errors) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	parts := make([]string, len(e.Fields))
	for index, field := range e.Fields {
		parts[index] = fmt.Sprintf("%s: %s", field.Field, field.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Map returns the errors keyed by field, the shape the backend uses in
// its validation responses.
func (e *Errors) Map() map[string]string {
	result := make(map[string]string, len(e.Fields))
	for _, field := range e.Fields {
		result[field.Field] = field.Message
	}
	return result
}
