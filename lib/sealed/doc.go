// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed wraps filippo.io/age for sealing CampusCard client
// state at rest.
//
// Key exports:
//
//   - [GenerateKeypair] creates an x25519 identity held in a secret.Buffer
//   - [WriteIdentityFile] / [ReadIdentityFile] persist it in age-keygen layout
//   - [Encrypt] / [Decrypt] convert between plaintext and base64 ciphertext
//   - [PublicKeyOf] derives the recipient for an identity
//
// lib/kvstore.Sealed uses this package to keep the session slot
// encrypted on disk.
package sealed
