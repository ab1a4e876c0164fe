// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the campuscard
// client.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a flag set built from a tagged
// params struct, and a Run function. Commands are assembled into a tree
// in cmd/campuscard/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Errors returned by commands are [ToolError]s carrying a category.
// [FromAPIError] maps client failures onto those categories so scripts
// can tell a bad argument from an expired session from a backend outage.
package cli
