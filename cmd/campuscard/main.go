// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// campuscard is the command-line client for the CampusCard student
// directory. See "campuscard --help".
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/cmd/campuscard/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like status) return an
		// ExitError with the desired exit code. Don't print a redundant
		// "error:" line for those.
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory may set CAMPUSCARD_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.Execute(ctx, os.Args[1:])
}
