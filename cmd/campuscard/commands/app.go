// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/mohamed20o03/web/api"
	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/lib/clock"
	"github.com/mohamed20o03/web/lib/config"
	"github.com/mohamed20o03/web/lib/kvstore"
	"github.com/mohamed20o03/web/lib/sealed"
	"github.com/mohamed20o03/web/session"
)

// sqliteFileName is the database created in the state directory when
// the sqlite backend has no explicit path.
const sqliteFileName = "session.db"

// App holds the process-wide state shared by commands: the resolved
// configuration and the session store. Both are built on first use so
// that commands which need neither (help, keygen) work without a
// readable configuration.
type App struct {
	// ConfigPath overrides CAMPUSCARD_CONFIG when non-empty.
	ConfigPath string

	// Clock decides token expiry. Nil means the real clock.
	Clock clock.Clock

	config  *config.Config
	store   session.Store
	holder  *session.Context
	lookups *api.Lookups
	closers []io.Closer
}

// Config loads and validates the configuration once.
func (app *App) Config() (*config.Config, error) {
	if app.config != nil {
		return app.config, nil
	}
	var (
		cfg *config.Config
		err error
	)
	if app.ConfigPath != "" {
		cfg, err = config.LoadFile(app.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	app.config = cfg
	return cfg, nil
}

func (app *App) clock() clock.Clock {
	if app.Clock != nil {
		return app.Clock
	}
	return clock.Real()
}

// Store opens the configured session store once.
func (app *App) Store(logger *slog.Logger) (session.Store, error) {
	if app.store != nil {
		return app.store, nil
	}
	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}

	slot, err := app.openSlot(cfg.Session, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Session.IdentityFile != "" {
		identity, err := sealed.ReadIdentityFile(cfg.Session.IdentityFile)
		if err != nil {
			return nil, cli.Validation("session.identity_file: %w", err)
		}
		app.closers = append(app.closers, identity)
		wrapped, err := kvstore.NewSealed(slot, identity)
		if err != nil {
			return nil, cli.Validation("session.identity_file: %w", err)
		}
		slot = wrapped
		logger.Debug("session encrypted at rest", "identity_file", cfg.Session.IdentityFile)
	}

	app.store = session.NewSlotStore(slot, logger)
	return app.store, nil
}

// Session returns the process-wide session context over the configured
// store, creating it on first use.
func (app *App) Session(logger *slog.Logger) (*session.Context, error) {
	if app.holder != nil {
		return app.holder, nil
	}
	store, err := app.Store(logger)
	if err != nil {
		return nil, err
	}
	holder := session.NewContext(store, logger)
	holder.Subscribe(func(current *session.Session) {
		if current == nil {
			logger.Debug("session context cleared")
			return
		}
		logger.Debug("session context changed", "user_id", current.UserID, "status", current.Status)
	})
	app.holder = holder
	return holder, nil
}

// runFunc is the signature of cli.Command.Run.
type runFunc = func(ctx context.Context, args []string, logger *slog.Logger) error

// scoped runs run inside the session scope: the process-wide
// session.Context is installed in ctx, where session.FromContext finds
// it. The context is reloaded on entry so each command starts from the
// durable value.
func (app *App) scoped(run runFunc) runFunc {
	return func(ctx context.Context, args []string, logger *slog.Logger) error {
		holder, err := app.Session(logger)
		if err != nil {
			return err
		}
		holder.Reload()
		return run(session.WithContext(ctx, holder), args, logger)
	}
}

// scopeTree wraps every Run in command's tree with scoped.
func (app *App) scopeTree(command *cli.Command) {
	if command.Run != nil {
		command.Run = app.scoped(command.Run)
	}
	for _, sub := range command.Subcommands {
		app.scopeTree(sub)
	}
}

func (app *App) openSlot(sessionConfig config.SessionConfig, logger *slog.Logger) (kvstore.Slot, error) {
	switch sessionConfig.Backend {
	case config.BackendMemory:
		return kvstore.NewMemory(), nil

	case config.BackendSQLite:
		path := sessionConfig.Path
		if path == "" {
			dir, err := kvstore.DefaultDir()
			if err != nil {
				return nil, cli.Internal("%w", err)
			}
			path = filepath.Join(dir, sqliteFileName)
		}
		database, err := kvstore.OpenSQLite(path, logger)
		if err != nil {
			return nil, cli.Internal("opening session database: %w", err)
		}
		app.closers = append(app.closers, database)
		logger.Debug("session store", "backend", "sqlite", "path", path)
		return database, nil

	default:
		path := sessionConfig.Path
		if path == "" {
			dir, err := kvstore.DefaultDir()
			if err != nil {
				return nil, cli.Internal("%w", err)
			}
			path = dir
		}
		logger.Debug("session store", "backend", "file", "path", path)
		dir, err := kvstore.NewDir(path)
		if err != nil {
			return nil, cli.Internal("%w", err)
		}
		return dir, nil
	}
}

// Client builds an API client over the session store.
func (app *App) Client(logger *slog.Logger) (*api.Client, error) {
	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}
	store, err := app.Store(logger)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Session:    store,
		Logger:     logger,
	})
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return client, nil
}

// Lookups returns the listing cache, created over client on first use.
func (app *App) Lookups(client *api.Client) (*api.Lookups, error) {
	if app.lookups != nil {
		return app.lookups, nil
	}
	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.LookupTTL()
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	app.lookups = api.NewLookups(client, ttl)
	return app.lookups, nil
}

// Close releases the session store and any identity held in memory.
func (app *App) Close() error {
	var errs []error
	for index := len(app.closers) - 1; index >= 0; index-- {
		if err := app.closers[index].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	app.store = nil
	app.holder = nil
	if len(errs) > 0 {
		return fmt.Errorf("closing: %w", errors.Join(errs...))
	}
	return nil
}
