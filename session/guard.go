// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

// Decision is the outcome of a navigation check.
type Decision int

const (
	// Proceed allows the navigation.
	Proceed Decision = iota
	// RedirectLogin sends the user to the login page.
	RedirectLogin
	// RedirectStatus sends the user to the account status page.
	RedirectStatus
)

// Paths of the redirect targets.
const (
	LoginPath  = "/login"
	StatusPath = "/status"
)

// Target returns the redirect path, or "" for Proceed.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectStatus:
		return StatusPath
	default:
		return ""
	}
}

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case RedirectLogin:
		return "redirect:" + LoginPath
	case RedirectStatus:
		return "redirect:" + StatusPath
	default:
		return "unknown"
	}
}

// MayEnter decides whether session may reach features reserved for
// approved students. Admins always proceed. Students proceed only when
// APPROVED; anyone else is sent to the status page. Without a session
// or token the answer is the login page.
func MayEnter(session *Session) Decision {
	if session == nil || session.Token == "" {
		return RedirectLogin
	}
	if session.IsAdmin() {
		return Proceed
	}
	if session.IsApproved() {
		return Proceed
	}
	return RedirectStatus
}

// Guard reads source (a Store, or a Context for its cached value) and
// applies MayEnter to what it finds.
func Guard(source Reader) Decision {
	session, _ := source.Read()
	return MayEnter(session)
}
