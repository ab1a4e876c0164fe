// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds a password or age identity in an anonymous mapping
// outside the Go heap, excluded from core dumps. A Buffer must not be
// copied. Reading a closed Buffer panics.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	locked bool
	closed bool
}

// New maps a zero-filled region of size bytes. The region is locked
// into RAM when RLIMIT_MEMLOCK allows it; see Locked. The caller must
// call Close.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise: %w", err)
	}

	buffer := &Buffer{data: data}
	// Login prompts run as unprivileged users whose memlock limit may be
	// zero. An unlocked mapping is still kept out of core dumps.
	buffer.locked = unix.Mlock(data) == nil
	return buffer, nil
}

// NewFromBytes moves source into a new Buffer and zeroes source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, errors.New("secret: cannot create buffer from empty source")
	}
	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.data, source)
	Zero(source)
	return buffer, nil
}

// Locked reports whether the region is pinned in RAM.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Bytes returns the mapped region itself. Do not retain it past Close.
func (b *Buffer) Bytes() []byte {
	return b.view()
}

// String returns a heap copy. Use it only where an API demands a
// string, such as a JSON login body or age key parsing.
func (b *Buffer) String() string {
	return string(b.view())
}

// Len returns the size of the secret.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

func (b *Buffer) view() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data
}

// Close zeroes and unmaps the region. Idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)
	var errs []error
	if b.locked {
		if err := unix.Munlock(b.data); err != nil {
			errs = append(errs, fmt.Errorf("munlock: %w", err))
		}
	}
	if err := unix.Munmap(b.data); err != nil {
		errs = append(errs, fmt.Errorf("munmap: %w", err))
	}
	b.data = nil
	if len(errs) > 0 {
		return fmt.Errorf("secret: %w", errors.Join(errs...))
	}
	return nil
}
