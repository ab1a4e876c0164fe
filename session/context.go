// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"log/slog"
	"sync"
)

// Context is the process-wide reactive view of the session. It caches
// the value read from its Store at construction and keeps the store in
// step with every change (write-through).
type Context struct {
	store  Store
	logger *slog.Logger

	mu          sync.Mutex
	current     *Session
	subscribers map[int]func(*Session)
	nextID      int
}

// NewContext reads store exactly once to seed the cached session.
func NewContext(store Store, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	current, _ := store.Read()
	return &Context{
		store:       store,
		logger:      logger,
		current:     current,
		subscribers: make(map[int]func(*Session)),
	}
}

// Session returns a copy of the cached session.
func (c *Context) Session() (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.clone(), c.current != nil
}

// Read returns the cached session, satisfying Reader.
func (c *Context) Read() (*Session, bool) { return c.Session() }

var _ Reader = (*Context)(nil)

// SetSession replaces the session. A nil session clears it. The store
// is written first: if that fails the cached value is unchanged and the
// error is returned. Subscribers are notified synchronously after the
// cached value changes.
func (c *Context) SetSession(session *Session) error {
	session = session.clone()

	c.mu.Lock()
	var err error
	if session == nil {
		err = c.store.Clear()
	} else {
		err = c.store.Write(session)
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.current = session
	subscribers := c.snapshotSubscribers()
	c.mu.Unlock()

	if session == nil {
		c.logger.Info("logged out")
	} else {
		c.logger.Info("session updated",
			"user_id", session.UserID,
			"role", session.Role,
			"token_fingerprint", Fingerprint(session.Token),
		)
	}
	notify(subscribers, session)
	return nil
}

// Logout clears the session.
func (c *Context) Logout() error {
	return c.SetSession(nil)
}

// Reload re-reads the store, picking up changes made behind the
// context's back (the HTTP client clears the store on a 401).
// Subscribers are notified only if the token or presence changed.
func (c *Context) Reload() {
	stored, _ := c.store.Read()

	c.mu.Lock()
	changed := !sameSession(c.current, stored)
	c.current = stored
	subscribers := c.snapshotSubscribers()
	c.mu.Unlock()

	if changed {
		notify(subscribers, stored.clone())
	}
}

// Subscribe registers fn to be called with every new session value
// (nil after logout). The returned function unregisters it.
func (c *Context) Subscribe(fn func(*Session)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Store returns the durable store behind the context.
func (c *Context) Store() Store { return c.store }

func (c *Context) snapshotSubscribers() []func(*Session) {
	result := make([]func(*Session), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		result = append(result, fn)
	}
	return result
}

func notify(subscribers []func(*Session), session *Session) {
	for _, fn := range subscribers {
		fn(session.clone())
	}
}

func sameSession(a, b *Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying holder.
func WithContext(ctx context.Context, holder *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, holder)
}

// Lookup returns the holder installed by WithContext, if any.
func Lookup(ctx context.Context) (*Context, bool) {
	holder, ok := ctx.Value(contextKey{}).(*Context)
	return holder, ok && holder != nil
}

// FromContext returns the holder installed by WithContext. Calling it
// outside such a scope is a programming error and panics.
func FromContext(ctx context.Context) *Context {
	holder, ok := Lookup(ctx)
	if !ok {
		panic("session: FromContext called without a session.Context; wrap the call in session.WithContext")
	}
	return holder
}
