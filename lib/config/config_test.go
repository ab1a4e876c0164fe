// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("environment = %s, want development", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Session.Backend != BackendFile {
		t.Errorf("session.backend = %q, want file", cfg.Session.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	t.Setenv(BaseURLEnvVar, "https://campuscard.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://campuscard.test" {
		t.Errorf("api.base_url = %q, want env override", cfg.API.BaseURL)
	}
}

func TestLoadFromEnvVar(t *testing.T) {
	path := writeConfig(t, "campuscard.yaml", `
environment: production
api:
  base_url: https://cards.example.edu
session:
  backend: sqlite
`)
	t.Setenv(ConfigEnvVar, path)
	t.Setenv(BaseURLEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != Production {
		t.Errorf("environment = %s, want production", cfg.Environment)
	}
	if cfg.API.BaseURL != "https://cards.example.edu" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Session.Backend != BackendSQLite {
		t.Errorf("session.backend = %q", cfg.Session.Backend)
	}
	if cfg.API.Timeout != "30s" {
		t.Errorf("unset api.timeout should keep default, got %q", cfg.API.Timeout)
	}
}

func TestLoadFileJSONC(t *testing.T) {
	path := writeConfig(t, "campuscard.jsonc", `{
  // local backend
  "api": {"base_url": "http://127.0.0.1:9000", "timeout": "5s",},
  "cache": {"lookup_ttl": "1m"},
}`)
	t.Setenv(BaseURLEnvVar, "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	timeout, err := cfg.RequestTimeout()
	if err != nil || timeout != 5*time.Second {
		t.Errorf("RequestTimeout() = %v, %v", timeout, err)
	}
	ttl, err := cfg.LookupTTL()
	if err != nil || ttl != time.Minute {
		t.Errorf("LookupTTL() = %v, %v", ttl, err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadFile of missing file should fail")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "campuscard.yaml", `
environment: production
api:
  base_url: http://localhost:8080
production:
  api:
    base_url: https://cards.example.edu
  session:
    identity_file: /etc/campuscard/identity.txt
development:
  api:
    base_url: http://dev.invalid
`)
	t.Setenv(BaseURLEnvVar, "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "https://cards.example.edu" {
		t.Errorf("api.base_url = %q, want production override", cfg.API.BaseURL)
	}
	if cfg.Session.IdentityFile != "/etc/campuscard/identity.txt" {
		t.Errorf("session.identity_file = %q", cfg.Session.IdentityFile)
	}
	if cfg.Session.Backend != BackendFile {
		t.Errorf("empty override replaced session.backend: %q", cfg.Session.Backend)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("CAMPUSCARD_TEST_DIR", "/srv/state")

	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/.config/campuscard", "/home/student/.config/campuscard"},
		{"${CAMPUSCARD_TEST_DIR}/session.db", "/srv/state/session.db"},
		{"${CAMPUSCARD_UNSET_VAR:-/tmp/fallback}/x", "/tmp/fallback/x"},
		{"/plain/path", "/plain/path"},
	}
	vars := map[string]string{"HOME": "/home/student"}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "bad environment", modify: func(c *Config) { c.Environment = "staging" }, wantErr: "invalid environment"},
		{name: "missing base url", modify: func(c *Config) { c.API.BaseURL = "" }, wantErr: "api.base_url is required"},
		{name: "relative base url", modify: func(c *Config) { c.API.BaseURL = "/api" }, wantErr: "absolute http(s) URL"},
		{name: "bad timeout", modify: func(c *Config) { c.API.Timeout = "soon" }, wantErr: "api.timeout"},
		{name: "negative ttl", modify: func(c *Config) { c.Cache.LookupTTL = "-1m" }, wantErr: "cache.lookup_ttl"},
		{name: "bad backend", modify: func(c *Config) { c.Session.Backend = "redis" }, wantErr: "session.backend"},
		{name: "sealed memory", modify: func(c *Config) {
			c.Session.Backend = BackendMemory
			c.Session.IdentityFile = "/id"
		}, wantErr: "identity_file"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestTimeoutZeroDisables(t *testing.T) {
	cfg := Default()
	cfg.API.Timeout = "0"
	timeout, err := cfg.RequestTimeout()
	if err != nil || timeout != 0 {
		t.Errorf("RequestTimeout() = %v, %v; want 0, nil", timeout, err)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
