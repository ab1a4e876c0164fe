// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the CampusCard login session and keeps every
// consumer's view of it consistent.
//
// A [Session] is either wholly present or wholly absent. It is created
// on login, replaced on re-authentication, and destroyed on logout, on
// a 401 from the backend, or when the stored value cannot be decoded.
//
// [Store] is the durable side: [SlotStore] persists the session as JSON
// under the key "campuscard.session" in any kvstore.Slot (a directory,
// a SQLite database, an age-sealed wrapper of either, or memory).
// Reading never fails; anything unreadable is treated as no session.
//
// [Context] is the in-memory side: it seeds itself from the store once,
// writes through on every change, and notifies subscribers. Install one
// per process with [WithContext] and retrieve it with [FromContext].
//
// [MayEnter] is the navigation guard: it decides whether a session may
// reach approved-student features, or must be sent to the login or
// status page instead.
package session
