// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package review

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mohamed20o03/web/session"
)

// Theme is the color palette of the review queue. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusPending  lipgloss.Color
	StatusApproved lipgloss.Color
	StatusRejected lipgloss.Color

	HeaderForeground lipgloss.Color
	ErrorForeground  lipgloss.Color
	HelpText         lipgloss.Color
}

// StatusColor returns the color for an approval status. Unknown values
// render faint.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch strings.ToUpper(status) {
	case session.StatusPending:
		return theme.StatusPending
	case session.StatusApproved:
		return theme.StatusApproved
	case session.StatusRejected:
		return theme.StatusRejected
	default:
		return theme.FaintText
	}
}

// DefaultTheme targets dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusPending:  lipgloss.Color("220"), // amber
	StatusApproved: lipgloss.Color("114"), // green
	StatusRejected: lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	ErrorForeground:  lipgloss.Color("196"),
	HelpText:         lipgloss.Color("241"),
}
