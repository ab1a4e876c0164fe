// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mohamed20o03/web/lib/kvstore"
)

// countingStore records how often Read is called.
type countingStore struct {
	Store
	reads int
}

func (c *countingStore) Read() (*Session, bool) {
	c.reads++
	return c.Store.Read()
}

func TestNewContextReadsStoreOnce(t *testing.T) {
	inner := NewMemoryStore()
	inner.Write(studentSession())
	store := &countingStore{Store: inner}

	holder := NewContext(store, nil)
	holder.Session()
	holder.Session()

	if store.reads != 1 {
		t.Errorf("store read %d times, want 1", store.reads)
	}
	session, ok := holder.Session()
	if !ok || session.Token != "t1" {
		t.Errorf("Session() = %+v, %v", session, ok)
	}
}

func TestSetSessionWritesThrough(t *testing.T) {
	store := NewMemoryStore()
	holder := NewContext(store, nil)

	if err := holder.SetSession(studentSession()); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	stored, ok := store.Read()
	if !ok || stored.Token != "t1" {
		t.Errorf("store holds %+v, %v", stored, ok)
	}

	if err := holder.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := store.Read(); ok {
		t.Error("store still holds a session after Logout")
	}
	if _, ok := holder.Session(); ok {
		t.Error("context still holds a session after Logout")
	}
}

func TestSetSessionDurableFailureKeepsCache(t *testing.T) {
	boom := errors.New("read-only filesystem")
	holder := NewContext(NewSlotStore(failingSlot{err: boom}, nil), nil)

	notified := false
	holder.Subscribe(func(*Session) { notified = true })

	if err := holder.SetSession(studentSession()); !errors.Is(err, boom) {
		t.Fatalf("SetSession() = %v, want store error", err)
	}
	if _, ok := holder.Session(); ok {
		t.Error("cache updated despite store failure")
	}
	if notified {
		t.Error("subscribers notified despite store failure")
	}
}

func TestSessionReturnsCopy(t *testing.T) {
	holder := NewContext(NewMemoryStore(), nil)
	holder.SetSession(studentSession())

	session, _ := holder.Session()
	session.Token = "tampered"

	again, _ := holder.Session()
	if again.Token != "t1" {
		t.Errorf("mutating returned session changed cache: %q", again.Token)
	}
}

func TestSubscribe(t *testing.T) {
	holder := NewContext(NewMemoryStore(), nil)

	var seen []string
	cancel := holder.Subscribe(func(session *Session) {
		if session == nil {
			seen = append(seen, "<nil>")
			return
		}
		seen = append(seen, session.Token)
	})

	holder.SetSession(studentSession())
	holder.Logout()
	cancel()
	holder.SetSession(&Session{Token: "t3"})

	if len(seen) != 2 || seen[0] != "t1" || seen[1] != "<nil>" {
		t.Errorf("subscriber saw %v, want [t1 <nil>]", seen)
	}
}

func TestReloadPicksUpExternalClear(t *testing.T) {
	slot := kvstore.NewMemory()
	store := NewSlotStore(slot, nil)
	store.Write(studentSession())
	holder := NewContext(store, nil)

	var notifications int
	holder.Subscribe(func(*Session) { notifications++ })

	holder.Reload()
	if notifications != 0 {
		t.Errorf("Reload without change notified %d times", notifications)
	}

	store.Clear()
	holder.Reload()
	if _, ok := holder.Session(); ok {
		t.Error("session still cached after external clear + Reload")
	}
	if notifications != 1 {
		t.Errorf("notifications = %d, want 1", notifications)
	}
}

func TestFromContext(t *testing.T) {
	holder := NewContext(NewMemoryStore(), nil)
	ctx := WithContext(context.Background(), holder)

	if FromContext(ctx) != holder {
		t.Error("FromContext returned a different holder")
	}
	if _, ok := Lookup(context.Background()); ok {
		t.Error("Lookup found a holder in a bare context")
	}

	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("FromContext outside a provider scope should panic")
		}
	}()
	FromContext(context.Background())
}
