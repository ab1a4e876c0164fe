// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package review

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the review queue.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Approve key.Binding
	Reject  key.Binding
	Verify  key.Binding
	Refresh key.Binding
	Quit    key.Binding

	// Active while typing a rejection reason.
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap is the built-in binding set: vim-style j/k alongside
// arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Approve: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "approve"),
	),
	Reject: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reject"),
	),
	Verify: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "send verification"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reject"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

func (keys KeyMap) browseHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Approve, keys.Reject, keys.Verify, keys.Refresh, keys.Quit}
}

func (keys KeyMap) reasonHelp() []key.Binding {
	return []key.Binding{keys.Confirm, keys.Cancel}
}
