// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/session"
)

// testEnv is a command tree wired to a fake backend and a private state
// directory.
type testEnv struct {
	app    *App
	server *httptest.Server
	stdout *bytes.Buffer
	dir    string
}

// newTestEnv starts handler as the backend and writes a configuration
// pointing at it. extraSession is appended to the session section.
func newTestEnv(t *testing.T, handler http.HandlerFunc, extraSession ...string) *testEnv {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	t.Setenv("CAMPUSCARD_SESSION_DIR", filepath.Join(dir, "state"))
	t.Setenv(PasswordEnvVar, "")

	configText := fmt.Sprintf("api:\n  base_url: %s\n  timeout: 5s\nsession:\n  backend: file\n  path: %s\n",
		server.URL, filepath.Join(dir, "state"))
	for _, line := range extraSession {
		configText += "  " + line + "\n"
	}
	configPath := filepath.Join(dir, "campuscard.yaml")
	if err := os.WriteFile(configPath, []byte(configText), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	var stdout bytes.Buffer
	previous := cli.Stdout
	cli.Stdout = &stdout
	t.Cleanup(func() { cli.Stdout = previous })

	app := &App{ConfigPath: configPath}
	t.Cleanup(func() { app.Close() })
	return &testEnv{app: app, server: server, stdout: &stdout, dir: dir}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// run executes the command tree with a silent logger.
func (env *testEnv) run(args ...string) error {
	ctx := cli.WithLogger(context.Background(), discardLogger())
	return Root(env.app).Execute(ctx, args)
}

// store returns the session store the commands use.
func (env *testEnv) store(t *testing.T) session.Store {
	t.Helper()
	store, err := env.app.Store(discardLogger())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return store
}

// signIn stores a session directly, bypassing login.
func (env *testEnv) signIn(t *testing.T, role, status string) {
	t.Helper()
	err := env.store(t).Write(&session.Session{
		Token:     "tok-" + role,
		UserID:    7,
		Email:     "hassan@eng.psu.edu.eg",
		FirstName: "Hassan",
		LastName:  "Ali",
		Role:      role,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("writing session: %v", err)
	}
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, value any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(value); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

// unexpected fails the test for any request that reaches it.
func unexpected(t *testing.T) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		http.Error(writer, "unexpected", http.StatusTeapot)
	}
}

// requireCategory asserts err is a ToolError of the given category.
func requireCategory(t *testing.T, err error, category cli.ErrorCategory) *cli.ToolError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", category)
	}
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *cli.ToolError, got %T: %v", err, err)
	}
	if toolErr.Category != category {
		t.Fatalf("category = %s, want %s (error: %v)", toolErr.Category, category, err)
	}
	return toolErr
}
