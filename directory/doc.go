// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package directory searches the student directory on the client side.
//
// The backend returns every visible profile in one listing; filtering
// and ranking happen locally. [Apply] supports two query modes:
// case-insensitive substring matching against the full name and
// faculty, and fzf-style fuzzy matching that ranks results by score.
package directory
