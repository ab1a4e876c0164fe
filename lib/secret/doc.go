// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds CampusCard passwords and age identities in memory
// allocated with mmap outside the Go heap, locked against swap
// (mlock), excluded from core dumps (MADV_DONTDUMP), and zeroed on
// Close.
//
// The CLI reads login and signup passwords into a [Buffer] (from a
// terminal prompt or with [ReadFromPath]) and converts to a string only
// at the request boundary. lib/sealed keeps identities in a Buffer.
package secret
