// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens a small pool of zombiezen.com/go/sqlite
// connections with the pragmas CampusCard client state needs.
//
// Every connection is initialized with:
//
//   - journal_mode=WAL so a running review session never blocks a
//     concurrent status query
//   - synchronous=FULL because the database holds the login session
//   - busy_timeout=5000
//   - temp_store=MEMORY
//
// Callers [Pool.Take] a connection and [Pool.Put] it back. Connections
// are not safe for concurrent use.
package sqlitepool
