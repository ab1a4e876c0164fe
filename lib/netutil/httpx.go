// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds HTTP body reads for the CampusCard API client
// and its test servers.
//
// CampusCard responses are small JSON documents (profiles, user lists,
// dashboard counters). MaxResponseSize caps what a misbehaving server
// can make the client buffer.
package netutil

import "io"

// MaxResponseSize bounds response body reads: 32 MB, well above the
// largest user listing the admin endpoints return.
const MaxResponseSize int64 = 32 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// it instead of io.ReadAll on HTTP bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
