// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mohamed20o03/web/lib/sealed"
)

// slotContract exercises the behavior every Slot implementation shares.
func slotContract(t *testing.T, slot Slot) {
	t.Helper()

	if _, found, err := slot.Get("campuscard.session"); err != nil || found {
		t.Fatalf("Get on empty slot = found %v, err %v", found, err)
	}

	if err := slot.Set("campuscard.session", `{"token":"t1"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, found, err := slot.Get("campuscard.session")
	if err != nil || !found || value != `{"token":"t1"}` {
		t.Fatalf("Get after Set = %q, %v, %v", value, found, err)
	}

	if err := slot.Set("campuscard.session", `{"token":"t2"}`); err != nil {
		t.Fatalf("second Set: %v", err)
	}
	value, _, _ = slot.Get("campuscard.session")
	if value != `{"token":"t2"}` {
		t.Errorf("Set did not replace value: %q", value)
	}

	if err := slot.Delete("campuscard.session"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := slot.Get("campuscard.session"); found {
		t.Error("value still present after Delete")
	}
	if err := slot.Delete("campuscard.session"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestMemory(t *testing.T) {
	slotContract(t, NewMemory())
}

func TestMemoryConcurrent(t *testing.T) {
	slot := NewMemory()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot.Set("k", "v")
			slot.Get("k")
			slot.Delete("k")
		}()
	}
	wg.Wait()
}

func TestDir(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "campuscard")
	slot, err := NewDir(directory)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	slotContract(t, slot)
}

func TestDirPermissions(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "campuscard")
	slot, _ := NewDir(directory)
	if err := slot.Set("campuscard.session", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	info, err := os.Stat(directory)
	if err != nil {
		t.Fatalf("stat directory: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("directory mode = %o, want 0700", info.Mode().Perm())
	}

	info, err = os.Stat(filepath.Join(directory, "campuscard.session"))
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %o, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(directory)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp files left behind?)", len(entries))
	}
}

func TestDirRejectsPathKeys(t *testing.T) {
	slot, _ := NewDir(t.TempDir())
	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := slot.Set(key, "v"); err == nil {
			t.Errorf("Set(%q) should fail", key)
		}
	}
}

func TestDefaultDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(DirEnvVar, "/custom/state")
		got, err := DefaultDir()
		if err != nil || got != "/custom/state" {
			t.Errorf("DefaultDir() = %q, %v", got, err)
		}
	})
	t.Run("xdg", func(t *testing.T) {
		t.Setenv(DirEnvVar, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		got, err := DefaultDir()
		if err != nil || got != "/xdg/campuscard" {
			t.Errorf("DefaultDir() = %q, %v", got, err)
		}
	})
}

func TestSQLite(t *testing.T) {
	slot, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer slot.Close()
	slotContract(t, slot)
}

func TestSQLiteClosed(t *testing.T) {
	slot, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := slot.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, _, err := slot.Get("k"); err == nil || !strings.Contains(err.Error(), ErrClosed.Error()) {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	first, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := first.Set("campuscard.session", "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	value, found, err := second.Get("campuscard.session")
	if err != nil || !found || value != "persisted" {
		t.Errorf("Get after reopen = %q, %v, %v", value, found, err)
	}
}

func TestSealed(t *testing.T) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	defer keypair.Close()

	inner := NewMemory()
	slot, err := NewSealed(inner, keypair.PrivateKey)
	if err != nil {
		t.Fatalf("NewSealed: %v", err)
	}
	slotContract(t, slot)

	if err := slot.Set("campuscard.session", `{"token":"secret-token"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, _, _ := inner.Get("campuscard.session")
	if strings.Contains(raw, "secret-token") {
		t.Error("inner slot holds plaintext")
	}
}

func TestSealedWrongIdentity(t *testing.T) {
	writer, _ := sealed.GenerateKeypair()
	defer writer.Close()
	reader, _ := sealed.GenerateKeypair()
	defer reader.Close()

	inner := NewMemory()
	writeSlot, _ := NewSealed(inner, writer.PrivateKey)
	readSlot, _ := NewSealed(inner, reader.PrivateKey)

	if err := writeSlot.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found, err := readSlot.Get("k"); err == nil || found {
		t.Errorf("Get with wrong identity = found %v, err %v; want error", found, err)
	}

	inner.Set("k", "not-ciphertext")
	if _, _, err := writeSlot.Get("k"); err == nil {
		t.Error("Get of plaintext value should fail to unseal")
	}
}
