// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	t.Run("body", func(t *testing.T) {
		data, err := ReadResponse(strings.NewReader(`{"message":"ok"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"message":"ok"}` {
			t.Fatalf("got %q", data)
		}
	})

	t.Run("empty", func(t *testing.T) {
		data, err := ReadResponse(bytes.NewReader(nil))
		if err != nil || len(data) != 0 {
			t.Fatalf("got %q, %v", data, err)
		}
	})

	t.Run("read error", func(t *testing.T) {
		if _, err := ReadResponse(failReader{}); err == nil {
			t.Fatal("expected error from failing reader")
		}
	})
}

func TestReadResponseLimit(t *testing.T) {
	data, err := ReadResponse(endlessReader{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if int64(len(data)) != MaxResponseSize {
		t.Fatalf("read %d bytes, want %d", len(data), MaxResponseSize)
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) { return len(p), nil }
