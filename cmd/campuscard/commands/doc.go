// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the campuscard command tree. Commands share
// one [App], which resolves configuration, opens the session store, and
// builds the API client on first use. Errors returned from Run
// functions are [cli.ToolError] values so main can pick an exit code.
package commands
