// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// Code that compares against the wall clock (token expiry, cache age,
// "last refreshed" labels) takes a Clock instead of calling time.Now.
// Production wiring passes Real(); tests pass Fake() and move time with
// Advance or Set.
package clock
