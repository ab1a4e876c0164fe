// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the CampusCard HTTP client.
//
// [Client.Do] is the single request pipeline. It prefixes the configured
// base URL, attaches "Authorization: Bearer <token>" from the session
// store unless the request opts out, encodes JSON or multipart bodies,
// and classifies the outcome:
//
//   - transport failure: *[Error] of kind network, store untouched
//   - 2xx: the response [Payload] (empty, JSON, or raw text)
//   - anything else: the store is cleared on 401, then [Normalize] maps
//     the status and body to an *[Error]
//
// There are no retries, no queuing and no built-in deadline; callers
// bound requests with their context.Context or the HTTP client timeout.
//
// Typed endpoint methods (Login, Profile, PendingUsers, ...) wrap Do for
// each backend route and decode responses into the DTOs in types.go.
// [Lookups] caches the public faculty and department listings.
package api
