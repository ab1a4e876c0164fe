// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package kvstore provides durable single-value slots addressed by string
// keys. A slot holds text: callers serialize structured values themselves.
//
// Implementations:
//   - Memory: process-local map, for tests and ephemeral sessions
//   - Dir: one file per key in a private directory
//   - SQLite: one row per key in a SQLite database
//   - Sealed: wraps another Slot and encrypts values with age
//
// All implementations are safe for concurrent use. Deleting a key that
// does not exist is not an error.
package kvstore

import (
	"errors"
	"sync"
)

// ErrClosed is returned by slots that have been closed.
var ErrClosed = errors.New("kvstore: slot is closed")

// Slot is a durable key-value cell.
type Slot interface {
	// Get returns the value stored under key. found is false (with a nil
	// error) when the key has no value.
	Get(key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the value stored under key. Removing a missing key
	// succeeds.
	Delete(key string) error
}

// Memory is an in-process Slot. The zero value is not usable; call
// NewMemory.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Slot = (*Memory)(nil)

// NewMemory returns an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, found := m.values[key]
	return value, found, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
