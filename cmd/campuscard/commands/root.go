// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/mohamed20o03/web/api"
	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/review"
	"github.com/mohamed20o03/web/session"
)

// Execute parses the global flags in args, builds the command tree, and
// runs the selected command. Global flags must precede the command name.
func Execute(ctx context.Context, args []string) error {
	global := pflag.NewFlagSet("campuscard", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)
	configPath := global.String("config", "", "configuration file (overrides CAMPUSCARD_CONFIG)")
	verbose := global.BoolP("verbose", "v", false, "log requests and session changes")
	err := global.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		Root(&App{}).PrintHelp(os.Stderr)
		return nil
	}
	if err != nil {
		return cli.Validation("%s\n\nRun 'campuscard --help' for usage.", err)
	}

	app := &App{ConfigPath: *configPath}
	defer app.Close()

	ctx = cli.WithLogger(ctx, cli.NewCommandLogger(*verbose))
	return Root(app).Execute(ctx, global.Args())
}

// Root returns the top-level command. Every command except keygen and
// version runs inside the session scope.
func Root(app *App) *cli.Command {
	scoped := []*cli.Command{
		loginCommand(app),
		logoutCommand(app),
		statusCommand(app),
		signupCommand(app),
		profileCommand(app),
		directoryCommand(app),
		adminCommand(app),
	}
	for _, command := range scoped {
		app.scopeTree(command)
	}
	return &cli.Command{
		Name:    "campuscard",
		Summary: "CampusCard student directory client",
		Description: `Sign in to CampusCard, manage your profile, browse the student
directory, and (for admins) review registrations.

Global flags must come before the command:
  --config FILE    configuration file (overrides CAMPUSCARD_CONFIG)
  -v, --verbose    log requests and session changes`,
		Subcommands: append(scoped, keygenCommand(), versionCommand()),
	}
}

// requireSession fails unless the scoped session carries a token.
func requireSession(ctx context.Context) (*session.Session, error) {
	current, ok := session.FromContext(ctx).Session()
	if !ok || current.Token == "" {
		return nil, cli.Forbidden("not logged in; run 'campuscard login'")
	}
	return current, nil
}

// requireApproved applies the route guard to commands reserved for
// approved students and admins.
func requireApproved(ctx context.Context, logger *slog.Logger) (*session.Session, error) {
	holder := session.FromContext(ctx)
	decision := session.Guard(holder)
	logger.Debug("route guard", "decision", decision.String())
	current, _ := holder.Session()
	switch decision {
	case session.Proceed:
		return current, nil
	case session.RedirectStatus:
		return nil, cli.Forbidden("account status is %s; run 'campuscard status' for details", current.Status)
	default:
		return nil, cli.Forbidden("not logged in; run 'campuscard login'")
	}
}

// requireAdmin fails locally for non-admin sessions. The backend checks
// again; this only saves a round trip.
func requireAdmin(ctx context.Context) (*session.Session, error) {
	current, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !current.IsAdmin() {
		return nil, cli.Forbidden("admin role required (signed in as %s)", current.Role)
	}
	return current, nil
}

// apiError categorizes a client failure. An unauthorized response has
// already cleared the store, so the scoped session is reloaded to match.
func apiError(ctx context.Context, err error) error {
	if api.IsKind(err, api.KindUnauthorized) {
		if holder, ok := session.Lookup(ctx); ok {
			holder.Reload()
		}
	}
	return cli.FromAPIError(err)
}

func statusBadge(status string) string {
	if status == "" {
		return "-"
	}
	return lipgloss.NewStyle().
		Foreground(review.DefaultTheme.StatusColor(status)).
		Bold(true).
		Render(strings.ToUpper(status))
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.Stdout, 0, 0, 2, ' ', 0)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
