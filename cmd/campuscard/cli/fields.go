// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"maps"
	"slices"
	"strings"
)

// formatFieldErrors renders per-field messages as indented lines,
// sorted by field name.
func formatFieldErrors(fields map[string]string) string {
	var builder strings.Builder
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		builder.WriteString("\n  ")
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(fields[name])
	}
	return builder.String()
}
