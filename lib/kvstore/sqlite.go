// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mohamed20o03/web/lib/sqlitepool"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY NOT NULL,
	value TEXT NOT NULL
) STRICT`

// SQLite stores keys as rows of a single table. Useful when several
// CampusCard profiles share one state file, or when the state directory
// sits on a filesystem where rename is not atomic.
type SQLite struct {
	pool *sqlitepool.Pool

	mu     sync.Mutex
	closed bool
}

var _ Slot = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path and
// ensures the kv table exists.
func OpenSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     path,
		PoolSize: 2,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteTransient(conn, kvSchema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("kvstore: %w", err)
	}
	return &SQLite{pool: pool}, nil
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.with(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT value FROM kv WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value = stmt.ColumnText(0)
				found = true
				return nil
			},
		})
	})
	if err != nil {
		return "", false, fmt.Errorf("kvstore: get %q: %w", key, err)
	}
	return value, found, nil
}

func (s *SQLite) Set(key, value string) error {
	err := s.with(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			&sqlitex.ExecOptions{Args: []any{key, value}})
	})
	if err != nil {
		return fmt.Errorf("kvstore: set %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	err := s.with(func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "DELETE FROM kv WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
		})
	})
	if err != nil {
		return fmt.Errorf("kvstore: delete %q: %w", key, err)
	}
	return nil
}

// Close releases the connection pool. Subsequent operations return
// ErrClosed.
func (s *SQLite) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.pool.Close()
}

func (s *SQLite) with(fn func(conn *sqlite.Conn) error) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	conn, err := s.pool.Take(context.Background())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)
	return fn(conn)
}
