// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Environment variables read by this package.
const (
	ConfigEnvVar  = "CAMPUSCARD_CONFIG"
	BaseURLEnvVar = "CAMPUSCARD_API_BASE_URL"
)

// Environment represents the deployment the client talks to.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Session storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the CampusCard client configuration.
type Config struct {
	Environment Environment `yaml:"environment" json:"environment"`

	API     APIConfig     `yaml:"api" json:"api"`
	Session SessionConfig `yaml:"session" json:"session"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`

	Development *ConfigOverrides `yaml:"development,omitempty" json:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty" json:"production,omitempty"`
}

// ConfigOverrides holds the fields an environment section may replace.
// Empty strings leave the base value in place.
type ConfigOverrides struct {
	API     *APIConfig     `yaml:"api,omitempty" json:"api,omitempty"`
	Session *SessionConfig `yaml:"session,omitempty" json:"session,omitempty"`
	Cache   *CacheConfig   `yaml:"cache,omitempty" json:"cache,omitempty"`
}

// APIConfig locates the CampusCard backend.
type APIConfig struct {
	// BaseURL is prefixed to every request path, e.g.
	// "https://campuscard.example.edu". No trailing slash is needed.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timeout bounds each HTTP exchange, as a Go duration string.
	// Empty or "0" disables the bound.
	Timeout string `yaml:"timeout" json:"timeout"`
}

// SessionConfig selects where the login session is persisted.
type SessionConfig struct {
	// Backend is "file", "sqlite", or "memory".
	Backend string `yaml:"backend" json:"backend"`

	// Path is the state directory (file backend) or database file
	// (sqlite backend). Empty selects the default state directory.
	Path string `yaml:"path" json:"path"`

	// IdentityFile, when set, names an age identity used to encrypt the
	// session at rest. Generate one with "campuscard keygen".
	IdentityFile string `yaml:"identity_file" json:"identity_file"`
}

// CacheConfig controls client-side caching.
type CacheConfig struct {
	// LookupTTL is how long faculty and department listings are reused.
	LookupTTL string `yaml:"lookup_ttl" json:"lookup_ttl"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "30s",
		},
		Session: SessionConfig{
			Backend: BackendFile,
		},
		Cache: CacheConfig{
			LookupTTL: "10m",
		},
	}
}

// Load reads the file named by CAMPUSCARD_CONFIG, or returns Default
// (with environment variables applied) when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(ConfigEnvVar)
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path, layered over Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.API != nil {
		setIfNonEmpty(&c.API.BaseURL, overrides.API.BaseURL)
		setIfNonEmpty(&c.API.Timeout, overrides.API.Timeout)
	}
	if overrides.Session != nil {
		setIfNonEmpty(&c.Session.Backend, overrides.Session.Backend)
		setIfNonEmpty(&c.Session.Path, overrides.Session.Path)
		setIfNonEmpty(&c.Session.IdentityFile, overrides.Session.IdentityFile)
	}
	if overrides.Cache != nil {
		setIfNonEmpty(&c.Cache.LookupTTL, overrides.Cache.LookupTTL)
	}
}

func setIfNonEmpty(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func (c *Config) applyEnv() {
	if value := os.Getenv(BaseURLEnvVar); value != "" {
		c.API.BaseURL = value
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Session.Path = expandVars(c.Session.Path, vars)
	c.Session.IdentityFile = expandVars(c.Session.IdentityFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, consulting vars before
// the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// RequestTimeout parses api.timeout. Zero means no bound.
func (c *Config) RequestTimeout() (time.Duration, error) {
	return parseDuration("api.timeout", c.API.Timeout)
}

// LookupTTL parses cache.lookup_ttl.
func (c *Config) LookupTTL() (time.Duration, error) {
	return parseDuration("cache.lookup_ttl", c.Cache.LookupTTL)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%s: must not be negative", field)
	}
	return duration, nil
}

// Validate checks the configuration for errors and reports all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %q", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL))
	}

	if _, err := c.RequestTimeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LookupTTL(); err != nil {
		errs = append(errs, err)
	}

	backends := []string{BackendFile, BackendSQLite, BackendMemory}
	if !slices.Contains(backends, c.Session.Backend) {
		errs = append(errs, fmt.Errorf("session.backend must be one of: %v", backends))
	}
	if c.Session.Backend == BackendMemory && c.Session.IdentityFile != "" {
		errs = append(errs, fmt.Errorf("session.identity_file has no effect with the memory backend"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
