// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mohamed20o03/web/lib/kvstore"
)

// Key is the slot key the session is stored under.
const Key = "campuscard.session"

// Reader is the read side of a Store.
type Reader interface {
	// Read returns the stored session. It never fails: a missing,
	// unreadable, or malformed value reads as (nil, false).
	Read() (*Session, bool)
}

// Store is durable session persistence. Implementations must be safe
// for concurrent use; each call is a single read or write of the whole
// session.
type Store interface {
	Reader

	// Write replaces the stored session.
	Write(*Session) error

	// Clear removes the stored session. Clearing an empty store
	// succeeds.
	Clear() error
}

// SlotStore persists the session as JSON in a kvstore.Slot.
type SlotStore struct {
	slot   kvstore.Slot
	logger *slog.Logger
}

var _ Store = (*SlotStore)(nil)

// NewSlotStore returns a Store backed by slot. A nil logger discards
// diagnostics.
func NewSlotStore(slot kvstore.Slot, logger *slog.Logger) *SlotStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SlotStore{slot: slot, logger: logger}
}

// NewMemoryStore returns a Store that lives only as long as the process.
func NewMemoryStore() *SlotStore {
	return NewSlotStore(kvstore.NewMemory(), nil)
}

func (s *SlotStore) Read() (*Session, bool) {
	raw, found, err := s.slot.Get(Key)
	if err != nil {
		s.logger.Warn("session unreadable, treating as logged out", "error", err)
		return nil, false
	}
	if !found || raw == "" {
		return nil, false
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Warn("stored session is malformed, treating as logged out", "error", err)
		return nil, false
	}
	return &session, true
}

func (s *SlotStore) Write(session *Session) error {
	if session == nil {
		return s.Clear()
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session: encoding: %w", err)
	}
	if err := s.slot.Set(Key, string(data)); err != nil {
		return fmt.Errorf("session: writing: %w", err)
	}
	s.logger.Debug("session stored", "token_fingerprint", Fingerprint(session.Token))
	return nil
}

func (s *SlotStore) Clear() error {
	if err := s.slot.Delete(Key); err != nil {
		return fmt.Errorf("session: clearing: %w", err)
	}
	s.logger.Debug("session cleared")
	return nil
}

// Token returns the stored bearer token. It is absent when there is no
// session or the session has an empty token.
func (s *SlotStore) Token() (string, bool) { return Token(s) }

// Role returns the stored role. Absent when there is no session.
func (s *SlotStore) Role() (string, bool) { return RoleOf(s) }

// Token returns the bearer token held by store, if any.
func Token(store Store) (string, bool) {
	session, ok := store.Read()
	if !ok || session.Token == "" {
		return "", false
	}
	return session.Token, true
}

// RoleOf returns the role held by store, if any.
func RoleOf(store Store) (string, bool) {
	session, ok := store.Read()
	if !ok {
		return "", false
	}
	return session.Role, true
}
