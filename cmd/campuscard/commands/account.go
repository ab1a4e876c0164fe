// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mohamed20o03/web/api"
	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/lib/kvstore"
	"github.com/mohamed20o03/web/lib/sealed"
	"github.com/mohamed20o03/web/lib/secret"
	"github.com/mohamed20o03/web/lib/validate"
	"github.com/mohamed20o03/web/session"
)

// PasswordEnvVar supplies the password non-interactively when no
// --password-file is given.
const PasswordEnvVar = "CAMPUSCARD_PASSWORD"

// readPassword resolves a password from --password-file, then
// CAMPUSCARD_PASSWORD, then a terminal prompt.
func readPassword(path, label string) (*secret.Buffer, error) {
	if path != "" {
		buffer, err := secret.ReadFromPath(path)
		if err != nil {
			return nil, cli.Validation("--password-file: %w", err)
		}
		return buffer, nil
	}
	if value := os.Getenv(PasswordEnvVar); value != "" {
		buffer, err := secret.NewFromBytes([]byte(value))
		if err != nil {
			return nil, cli.Internal("%w", err)
		}
		return buffer, nil
	}
	buffer, err := secret.ReadPassword(int(os.Stdin.Fd()), os.Stderr, label)
	if err != nil {
		return nil, cli.Validation("%w (use --password-file or %s)", err, PasswordEnvVar)
	}
	return buffer, nil
}

type loginParams struct {
	PasswordFile string `flag:"password-file" desc:"read the password from this file (- for stdin)"`
}

func loginCommand(app *App) *cli.Command {
	var params loginParams
	return &cli.Command{
		Name:    "login",
		Summary: "Sign in with an email address or national ID",
		Usage:   "campuscard login [flags] <email-or-national-id>",
		Description: `Authenticate against the backend and store the session. The password
is read from --password-file, then CAMPUSCARD_PASSWORD, then prompted
for on the terminal.`,
		Examples: []cli.Example{
			{Description: "Sign in interactively", Command: "campuscard login student@eng.psu.edu.eg"},
			{Description: "Sign in from a script", Command: "campuscard login --password-file - 29901011234567 < pw.txt"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args, "email-or-national-id"); err != nil {
				return err
			}
			identifier := strings.TrimSpace(args[0])

			password, err := readPassword(params.PasswordFile, "Password")
			if err != nil {
				return err
			}
			defer password.Close()

			client, err := app.Client(logger)
			if err != nil {
				return err
			}

			response, err := client.Login(ctx, api.LoginRequest{Identifier: identifier, Password: password.String()})
			if err != nil {
				return apiError(ctx, err)
			}

			holder := session.FromContext(ctx)
			current := response.Session()
			if err := holder.SetSession(current); err != nil {
				return cli.Internal("saving session: %w", err)
			}

			// Names are not part of the login response. Other failures
			// leave the session usable, so they are only logged. A 401
			// means the client has already cleared the new session.
			profile, err := client.Profile(ctx)
			switch {
			case api.IsKind(err, api.KindUnauthorized):
				return apiError(ctx, err)
			case err != nil:
				logger.Debug("profile lookup after login failed", "error", err)
			default:
				named := *current
				named.FirstName = profile.FirstName
				named.LastName = profile.LastName
				if err := holder.SetSession(&named); err != nil {
					return cli.Internal("saving session: %w", err)
				}
				current = &named
			}

			logger.Info("logged in", "user_id", current.UserID, "token_fingerprint", session.Fingerprint(current.Token))
			fmt.Fprintf(cli.Stdout, "Logged in as %s (%s, %s)\n", current.DisplayName(), current.Role, statusBadge(current.Status))
			if decision := session.MayEnter(current); decision == session.RedirectStatus {
				fmt.Fprintln(cli.Stdout, "Your account is not approved yet; run 'campuscard status' for details.")
			}
			return nil
		},
	}
}

func logoutCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Forget the stored session",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			if err := session.FromContext(ctx).Logout(); err != nil {
				return cli.Internal("clearing session: %w", err)
			}
			fmt.Fprintln(cli.Stdout, "Logged out.")
			return nil
		},
	}
}

type statusParams struct {
	cli.JSONOutput
	Refresh bool `flag:"refresh" desc:"fetch the current approval status from the backend"`
}

// statusView is the --json shape of "campuscard status".
type statusView struct {
	LoggedIn         bool       `json:"loggedIn"`
	UserID           int64      `json:"userId,omitempty"`
	Email            string     `json:"email,omitempty"`
	Name             string     `json:"name,omitempty"`
	Role             string     `json:"role,omitempty"`
	Status           string     `json:"status,omitempty"`
	RejectionReason  string     `json:"rejectionReason,omitempty"`
	TokenFingerprint string     `json:"tokenFingerprint,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	Expired          bool       `json:"expired,omitempty"`
	Access           string     `json:"access"`
}

func statusCommand(app *App) *cli.Command {
	var params statusParams
	return &cli.Command{
		Name:    "status",
		Summary: "Show the signed-in account and its approval state",
		Description: `Show who is signed in, the approval state, and whether the directory is
reachable. Exits 1 when no session is stored.

With --refresh the profile is fetched so a changed approval state (or a
rejection reason) is picked up without logging in again.`,
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			holder := session.FromContext(ctx)
			current, ok := holder.Session()
			var rejectionReason string
			if ok && params.Refresh {
				client, err := app.Client(logger)
				if err != nil {
					return err
				}
				profile, err := client.Profile(ctx)
				if err != nil {
					return apiError(ctx, err)
				}
				refreshed := *current
				refreshed.Status = profile.Status
				if profile.Role != "" {
					refreshed.Role = profile.Role
				}
				refreshed.FirstName = profile.FirstName
				refreshed.LastName = profile.LastName
				if err := holder.SetSession(&refreshed); err != nil {
					return cli.Internal("saving session: %w", err)
				}
				current = &refreshed
				rejectionReason = profile.RejectionReason
			}

			decision := session.MayEnter(current)
			view := statusView{LoggedIn: decision != session.RedirectLogin, Access: decision.String()}
			if view.LoggedIn {
				view.UserID = current.UserID
				view.Email = current.Email
				view.Name = current.DisplayName()
				view.Role = current.Role
				view.Status = current.Status
				view.RejectionReason = rejectionReason
				view.TokenFingerprint = session.Fingerprint(current.Token)
				if expiry, err := session.ExpiresAt(current.Token); err == nil {
					view.ExpiresAt = &expiry
					view.Expired = session.Expired(current.Token, app.clock())
				}
			}

			if done, err := params.EmitJSON(view); done {
				if err != nil {
					return err
				}
				if !view.LoggedIn {
					return &cli.ExitError{Code: 1}
				}
				return nil
			}

			if !view.LoggedIn {
				fmt.Fprintln(cli.Stdout, "Not logged in. Run 'campuscard login'.")
				return &cli.ExitError{Code: 1}
			}

			table := newTable()
			fmt.Fprintf(table, "User:\t%s <%s>\n", view.Name, view.Email)
			fmt.Fprintf(table, "Role:\t%s\n", orDash(view.Role))
			fmt.Fprintf(table, "Status:\t%s\n", statusBadge(view.Status))
			if view.RejectionReason != "" {
				fmt.Fprintf(table, "Reason:\t%s\n", view.RejectionReason)
			}
			fmt.Fprintf(table, "Token:\t%s\n", view.TokenFingerprint)
			if view.ExpiresAt != nil {
				expires := view.ExpiresAt.Local().Format(time.RFC1123)
				if view.Expired {
					expires += " (expired; run 'campuscard login')"
				}
				fmt.Fprintf(table, "Expires:\t%s\n", expires)
			}
			table.Flush()

			switch decision {
			case session.Proceed:
				fmt.Fprintln(cli.Stdout, "\nThe directory and profile features are available.")
			case session.RedirectStatus:
				fmt.Fprintln(cli.Stdout, "\nAn admin must approve the account before the directory is available.")
			}
			return nil
		},
	}
}

type signupParams struct {
	FirstName    string `flag:"first-name" desc:"given name (required)"`
	LastName     string `flag:"last-name" desc:"family name (required)"`
	DateOfBirth  string `flag:"dob" desc:"date of birth as YYYY-MM-DD (required)"`
	Email        string `flag:"email" desc:"university email address (required)"`
	NationalID   string `flag:"national-id" desc:"14-digit national ID (required)"`
	Faculty      string `flag:"faculty" desc:"faculty name (required unless --faculty-id)"`
	FacultyID    int64  `flag:"faculty-id" desc:"faculty ID"`
	DepartmentID int64  `flag:"department-id" desc:"department ID (required)"`
	Year         int    `flag:"year" desc:"study year (required)"`
	IDScan       string `flag:"id-scan" desc:"image of the national ID card (required)"`
	PasswordFile string `flag:"password-file" desc:"read the password from this file (- for stdin)"`
}

func signupCommand(app *App) *cli.Command {
	var params signupParams
	return &cli.Command{
		Name:    "signup",
		Summary: "Register a new student account",
		Description: `Submit a registration with a scan of the national ID card. Every field
is checked locally first so all problems are reported together. The
account starts in PENDING state until an admin approves it.`,
		Examples: []cli.Example{
			{
				Description: "Register in the Engineering faculty",
				Command: "campuscard signup --first-name Hassan --last-name Ali --dob 2003-04-01 \\\n" +
					"    --email hassan@eng.psu.edu.eg --national-id 30304011234567 \\\n" +
					"    --faculty Engineering --department-id 3 --year 2 --id-scan id.jpg",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}

			var problems validate.Errors
			problems.Check("firstName", validate.Name(params.FirstName))
			problems.Check("lastName", validate.Name(params.LastName))
			problems.Check("email", validate.Email(params.Email))
			problems.Check("nationalId", validate.NationalID(params.NationalID))
			if _, err := time.Parse(time.DateOnly, params.DateOfBirth); err != nil {
				problems.Check("dateOfBirth", fmt.Errorf("must be a date as YYYY-MM-DD"))
			}
			if params.Faculty == "" && params.FacultyID <= 0 {
				problems.Check("facultyId", validate.ErrRequired)
			}
			if params.DepartmentID <= 0 {
				problems.Check("departmentId", validate.ErrRequired)
			}
			if params.Year <= 0 {
				problems.Check("year", validate.ErrRequired)
			}

			var scan api.Upload
			if params.IDScan == "" {
				problems.Check("nationalIdScan", validate.ErrRequired)
			} else {
				upload, err := readUpload(params.IDScan)
				if err != nil {
					problems.Check("nationalIdScan", err)
				}
				scan = upload
			}
			if err := problems.Err(); err != nil {
				return cli.Validation("%w", err)
			}

			password, err := readPassword(params.PasswordFile, "Choose a password")
			if err != nil {
				return err
			}
			defer password.Close()
			if err := validate.Password(password.Bytes()); err != nil {
				return cli.Validation("password: %w", err)
			}

			client, err := app.Client(logger)
			if err != nil {
				return err
			}

			facultyID := params.FacultyID
			if facultyID <= 0 {
				lookups, err := app.Lookups(client)
				if err != nil {
					return err
				}
				faculty, err := lookups.FacultyByName(ctx, params.Faculty)
				if api.KindOf(err) != "" {
					return apiError(ctx, err)
				}
				if err != nil {
					return cli.Validation("unknown faculty %q; run 'campuscard directory faculties'", params.Faculty)
				}
				facultyID = faculty.ID
			}

			response, err := client.Signup(ctx, api.SignupRequest{
				FirstName:    params.FirstName,
				LastName:     params.LastName,
				DateOfBirth:  params.DateOfBirth,
				Email:        params.Email,
				Password:     password.String(),
				NationalID:   params.NationalID,
				FacultyID:    facultyID,
				DepartmentID: params.DepartmentID,
				Year:         params.Year,
			}, scan)
			if err != nil {
				return apiError(ctx, err)
			}

			logger.Info("registered", "user_id", response.ID)
			fmt.Fprintf(cli.Stdout, "Registered %s (status %s).\n", response.Email, statusBadge(response.Status))
			if response.Message != "" {
				fmt.Fprintln(cli.Stdout, response.Message)
			}
			return nil
		},
	}
}

// readUpload loads an image from disk and checks it the way the backend
// will.
func readUpload(path string) (api.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.Upload{}, err
	}
	contentType, err := validate.Image(data)
	if err != nil {
		return api.Upload{}, err
	}
	return api.Upload{Filename: filepath.Base(path), ContentType: contentType, Data: data}, nil
}

type keygenParams struct {
	Out string `flag:"out,o" desc:"identity file to create (default: identity.age in the state directory)"`
}

func keygenCommand() *cli.Command {
	var params keygenParams
	return &cli.Command{
		Name:    "keygen",
		Summary: "Create an identity for encrypting the stored session",
		Description: `Generate an age identity and write it with mode 0600. Point
session.identity_file at it to keep the stored session encrypted at
rest. An existing file is never overwritten.`,
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			path := params.Out
			if path == "" {
				dir, err := kvstore.DefaultDir()
				if err != nil {
					return cli.Internal("%w", err)
				}
				if err := os.MkdirAll(dir, 0700); err != nil {
					return cli.Internal("creating %s: %w", dir, err)
				}
				path = filepath.Join(dir, "identity.age")
			}

			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return cli.Internal("%w", err)
			}
			defer keypair.Close()

			if err := sealed.WriteIdentityFile(path, keypair); err != nil {
				if errors.Is(err, fs.ErrExist) {
					return cli.Conflict("%s already exists", path)
				}
				return cli.Internal("%w", err)
			}
			logger.Info("identity created", "path", path)
			fmt.Fprintf(cli.Stdout, "Wrote %s\nPublic key: %s\n\nAdd to your configuration:\n  session:\n    identity_file: %s\n",
				path, keypair.PublicKey, path)
			return nil
		},
	}
}
