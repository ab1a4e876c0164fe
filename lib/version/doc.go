// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build of the campuscard binary.
//
// Release builds inject values with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/mohamed20o03/web/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/campuscard
//
// Values left empty are taken from the VCS stamp in the module build
// info, then default to "unknown".
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full] -- Info plus Go version and GOOS/GOARCH
//   - [Current] -- the same data as a struct, for --json output
package version
