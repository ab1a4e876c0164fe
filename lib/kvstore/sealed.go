// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"fmt"

	"github.com/mohamed20o03/web/lib/sealed"
	"github.com/mohamed20o03/web/lib/secret"
)

// Sealed encrypts values with age before handing them to an inner slot.
// A value that fails to decrypt (wrong identity, tampering, a plaintext
// left over from before sealing was enabled) is reported as an error so
// callers can treat it as absent.
type Sealed struct {
	inner     Slot
	identity  *secret.Buffer
	recipient string
}

var _ Slot = (*Sealed)(nil)

// NewSealed wraps inner. identity is borrowed; the caller keeps
// ownership and must keep it open for the lifetime of the slot.
func NewSealed(inner Slot, identity *secret.Buffer) (*Sealed, error) {
	recipient, err := sealed.PublicKeyOf(identity)
	if err != nil {
		return nil, fmt.Errorf("kvstore: %w", err)
	}
	return &Sealed{inner: inner, identity: identity, recipient: recipient}, nil
}

func (s *Sealed) Get(key string) (string, bool, error) {
	ciphertext, found, err := s.inner.Get(key)
	if err != nil || !found {
		return "", found, err
	}
	plaintext, err := sealed.Decrypt(ciphertext, s.identity)
	if err != nil {
		return "", false, fmt.Errorf("kvstore: unsealing %q: %w", key, err)
	}
	defer plaintext.Close()
	return plaintext.String(), true, nil
}

func (s *Sealed) Set(key, value string) error {
	ciphertext, err := sealed.Encrypt([]byte(value), []string{s.recipient})
	if err != nil {
		return fmt.Errorf("kvstore: sealing %q: %w", key, err)
	}
	return s.inner.Set(key, ciphertext)
}

func (s *Sealed) Delete(key string) error {
	return s.inner.Delete(key)
}
