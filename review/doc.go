// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package review implements the interactive admin queue for pending
// registrations as a bubbletea program.
//
// The model lists users awaiting approval and lets an admin approve,
// reject with an optional reason, or resend the verification email.
// All backend calls go through the [Reviewer] interface, which
// *api.Client satisfies; tests drive the model with a fake.
//
// Decisions run as tea.Cmds so the UI stays responsive while a request
// is in flight. A request rejected as unauthorized ends the program:
// the client has already cleared the stored session, so nothing more
// can succeed until the operator logs in again.
package review
