// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirEnvVar overrides the default directory used by DefaultDir.
const DirEnvVar = "CAMPUSCARD_SESSION_DIR"

// Dir stores each key as a file in a directory. Files are created with
// mode 0600 inside a 0700 directory because values include bearer
// credentials. Writes go to a temporary file that is renamed over the
// target, so readers never observe a partial value.
type Dir struct {
	path string
}

var _ Slot = (*Dir)(nil)

// DefaultDir returns the directory for CampusCard client state:
// $CAMPUSCARD_SESSION_DIR if set, otherwise $XDG_CONFIG_HOME/campuscard,
// falling back to ~/.config/campuscard.
func DefaultDir() (string, error) {
	if path := os.Getenv(DirEnvVar); path != "" {
		return path, nil
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("kvstore: cannot determine home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "campuscard"), nil
}

// NewDir returns a Slot rooted at path. The directory is created on the
// first Set.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		return nil, fmt.Errorf("kvstore: directory path is required")
	}
	return &Dir{path: path}, nil
}

// Path returns the directory backing the slot.
func (d *Dir) Path() string { return d.path }

func (d *Dir) Get(key string) (string, bool, error) {
	file, err := d.file(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore: reading %s: %w", file, err)
	}
	return string(data), true, nil
}

func (d *Dir) Set(key, value string) error {
	file, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0700); err != nil {
		return fmt.Errorf("kvstore: creating directory %s: %w", d.path, err)
	}

	temp, err := os.CreateTemp(d.path, "."+key+".*")
	if err != nil {
		return fmt.Errorf("kvstore: creating temp file: %w", err)
	}
	tempPath := temp.Name()
	if err := temp.Chmod(0600); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("kvstore: chmod %s: %w", tempPath, err)
	}
	if _, err := temp.WriteString(value); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("kvstore: writing %s: %w", tempPath, err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("kvstore: closing %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, file); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("kvstore: replacing %s: %w", file, err)
	}
	return nil
}

func (d *Dir) Delete(key string) error {
	file, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("kvstore: removing %s: %w", file, err)
	}
	return nil
}

// file maps a key to its path. Keys are used as file names directly,
// so separators and dot-only names are rejected.
func (d *Dir) file(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("kvstore: invalid key %q", key)
	}
	return filepath.Join(d.path, key), nil
}
