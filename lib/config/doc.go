// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads CampusCard client configuration.
//
// A configuration file is optional. When present it is named by the
// --config flag (via [LoadFile]) or the CAMPUSCARD_CONFIG environment
// variable (via [Load]); there is no search path. Files ending in .json
// or .jsonc are parsed as JSON with comments and trailing commas
// (github.com/tidwall/jsonc); anything else is YAML.
//
// The file may carry development and production sections that override
// base values when [Config].Environment matches. Path fields support
// ${HOME}, ${VAR} and ${VAR:-default} expansion. After loading,
// CAMPUSCARD_API_BASE_URL replaces api.base_url so a .env file can
// point the CLI at a local backend.
//
// Key exports:
//
//   - [Config] with API, Session, and Cache sections
//   - [Default] returns the built-in development configuration
//   - [Load] and [LoadFile] are the entry points
package config
