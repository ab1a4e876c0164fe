// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mohamed20o03/web/api"
	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/lib/validate"
)

func profileCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "View and edit your profile",
		Description: `Profile commands require an approved account (or the admin role).
Students whose registration is pending or rejected are pointed at
'campuscard status' instead.`,
		Subcommands: []*cli.Command{
			profileShowCommand(app),
			profileUpdateCommand(app),
			profilePhotoCommand(app),
			profileScanCommand(app),
			profileVisibilityCommand(app),
			profileViewCommand(app),
		},
	}
}

// approvedClient applies the route guard to the scoped session and
// returns a client for it.
func approvedClient(ctx context.Context, app *App, logger *slog.Logger) (*api.Client, error) {
	if _, err := requireApproved(ctx, logger); err != nil {
		return nil, err
	}
	return app.Client(logger)
}

func printProfile(profile *api.Profile) {
	table := newTable()
	fmt.Fprintf(table, "Name:\t%s\n", profile.FullName())
	fmt.Fprintf(table, "Email:\t%s\n", orDash(profile.Email))
	if profile.Status != "" {
		fmt.Fprintf(table, "Status:\t%s\n", statusBadge(profile.Status))
	}
	if profile.RejectionReason != "" {
		fmt.Fprintf(table, "Reason:\t%s\n", profile.RejectionReason)
	}
	fmt.Fprintf(table, "Faculty:\t%s\n", orDash(profile.Faculty))
	fmt.Fprintf(table, "Department:\t%s\n", orDash(profile.Department))
	if profile.Year > 0 {
		fmt.Fprintf(table, "Year:\t%d\n", profile.Year)
	}
	fmt.Fprintf(table, "Visibility:\t%s\n", orDash(profile.Visibility))
	for _, row := range [][2]string{
		{"Bio", profile.Bio},
		{"Interests", profile.Interests},
		{"Phone", profile.Phone},
		{"LinkedIn", profile.LinkedIn},
		{"GitHub", profile.GitHub},
		{"Photo", profile.ProfilePhoto},
	} {
		if row[1] != "" {
			fmt.Fprintf(table, "%s:\t%s\n", row[0], row[1])
		}
	}
	table.Flush()
}

type profileShowParams struct {
	cli.JSONOutput
}

func profileShowCommand(app *App) *cli.Command {
	var params profileShowParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show your profile",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := approvedClient(ctx, app, logger)
			if err != nil {
				return err
			}
			profile, err := client.Profile(ctx)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(profile); done {
				return err
			}
			printProfile(profile)
			return nil
		},
	}
}

// profileUpdateFlags binds the editable fields. Only flags given on the
// command line end up in the update, so "--bio ''" clears the bio while
// omitting --bio leaves it alone.
type profileUpdateFlags struct {
	set *pflag.FlagSet

	firstName, lastName    string
	bio, interests, phone  string
	linkedIn, gitHub       string
	visibility, nationalID string
	facultyID              int64
	departmentID           int64
	year                   int
}

func newProfileUpdateFlags() *profileUpdateFlags {
	flags := &profileUpdateFlags{set: pflag.NewFlagSet("update", pflag.ContinueOnError)}
	flags.set.StringVar(&flags.firstName, "first-name", "", "given name")
	flags.set.StringVar(&flags.lastName, "last-name", "", "family name")
	flags.set.StringVar(&flags.bio, "bio", "", "short biography")
	flags.set.StringVar(&flags.interests, "interests", "", "interests, free text")
	flags.set.StringVar(&flags.phone, "phone", "", "phone number")
	flags.set.StringVar(&flags.linkedIn, "linkedin", "", "LinkedIn profile URL")
	flags.set.StringVar(&flags.gitHub, "github", "", "GitHub profile URL")
	flags.set.StringVar(&flags.visibility, "visibility", "", "PUBLIC, STUDENTS_ONLY, or PRIVATE")
	flags.set.StringVar(&flags.nationalID, "national-id", "", "14-digit national ID")
	flags.set.Int64Var(&flags.facultyID, "faculty-id", 0, "faculty ID")
	flags.set.Int64Var(&flags.departmentID, "department-id", 0, "department ID")
	flags.set.IntVar(&flags.year, "year", 0, "study year")
	return flags
}

// update builds the request from the flags that were set and checks
// each value.
func (flags *profileUpdateFlags) update() (api.ProfileUpdate, error) {
	var (
		update   api.ProfileUpdate
		problems validate.Errors
	)
	text := func(name, field string, value string, target **string, check func(string) error) {
		if !flags.set.Changed(name) {
			return
		}
		if check != nil && value != "" {
			problems.Check(field, check(value))
		}
		*target = &value
	}
	text("first-name", "firstName", flags.firstName, &update.FirstName, validate.Name)
	text("last-name", "lastName", flags.lastName, &update.LastName, validate.Name)
	text("bio", "bio", flags.bio, &update.Bio, validate.Bio)
	text("interests", "interests", flags.interests, &update.Interests, validate.Interests)
	text("phone", "phone", flags.phone, &update.Phone, validate.Phone)
	text("linkedin", "linkedin", flags.linkedIn, &update.LinkedIn, validate.LinkedIn)
	text("github", "github", flags.gitHub, &update.GitHub, validate.GitHub)
	text("national-id", "nationalId", flags.nationalID, &update.NationalID, validate.NationalID)

	if flags.set.Changed("visibility") {
		visibility := strings.ToUpper(flags.visibility)
		problems.Check("visibility", validate.Visibility(visibility))
		update.Visibility = &visibility
	}
	if flags.set.Changed("faculty-id") {
		update.FacultyID = &flags.facultyID
	}
	if flags.set.Changed("department-id") {
		update.DepartmentID = &flags.departmentID
	}
	if flags.set.Changed("year") {
		update.Year = &flags.year
	}

	if err := problems.Err(); err != nil {
		return api.ProfileUpdate{}, cli.Validation("%w", err)
	}
	if update.Empty() {
		return api.ProfileUpdate{}, cli.Validation("nothing to update; pass at least one field flag")
	}
	return update, nil
}

func profileUpdateCommand(app *App) *cli.Command {
	var flags *profileUpdateFlags
	return &cli.Command{
		Name:    "update",
		Summary: "Change profile fields",
		Usage:   "campuscard profile update [field flags]",
		Examples: []cli.Example{
			{Description: "Set a bio and clear the phone number", Command: "campuscard profile update --bio 'Robotics, year 3' --phone ''"},
		},
		Flags: func() *pflag.FlagSet {
			flags = newProfileUpdateFlags()
			return flags.set
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			update, err := flags.update()
			if err != nil {
				return err
			}
			client, err := approvedClient(ctx, app, logger)
			if err != nil {
				return err
			}
			profile, err := client.UpdateProfile(ctx, update)
			if err != nil {
				return apiError(ctx, err)
			}
			fmt.Fprintln(cli.Stdout, "Profile updated.")
			printProfile(profile)
			return nil
		},
	}
}

func profilePhotoCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "photo",
		Summary: "Upload a profile photo",
		Usage:   "campuscard profile photo <image-file>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args, "image-file"); err != nil {
				return err
			}
			upload, err := readUpload(args[0])
			if err != nil {
				return cli.Validation("%s: %w", args[0], err)
			}
			client, err := approvedClient(ctx, app, logger)
			if err != nil {
				return err
			}
			response, err := client.UploadProfilePhoto(ctx, upload)
			if err != nil {
				return apiError(ctx, err)
			}
			fmt.Fprintf(cli.Stdout, "Photo uploaded: %s\n", response.PhotoURL)
			return nil
		},
	}
}

func profileScanCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "id-scan",
		Summary: "Replace the national ID scan",
		Usage:   "campuscard profile id-scan <image-file>",
		Description: `Upload a new national ID scan. Allowed for any signed-in account,
including pending ones asked by an admin for a clearer image.`,
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args, "image-file"); err != nil {
				return err
			}
			upload, err := readUpload(args[0])
			if err != nil {
				return cli.Validation("%s: %w", args[0], err)
			}
			if _, err := requireSession(ctx); err != nil {
				return err
			}
			client, err := app.Client(logger)
			if err != nil {
				return err
			}
			response, err := client.UploadNationalIDScan(ctx, upload)
			if err != nil {
				return apiError(ctx, err)
			}
			fmt.Fprintf(cli.Stdout, "ID scan uploaded: %s\n", response.ScanURL)
			return nil
		},
	}
}

func profileVisibilityCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "visibility",
		Summary: "Set who can see your profile",
		Usage:   "campuscard profile visibility PUBLIC|STUDENTS_ONLY|PRIVATE",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args, "visibility"); err != nil {
				return err
			}
			visibility := strings.ToUpper(args[0])
			if err := validate.Visibility(visibility); err != nil {
				return cli.Validation("visibility: %w", err)
			}
			client, err := approvedClient(ctx, app, logger)
			if err != nil {
				return err
			}
			profile, err := client.UpdateVisibility(ctx, visibility)
			if err != nil {
				return apiError(ctx, err)
			}
			fmt.Fprintf(cli.Stdout, "Visibility set to %s.\n", profile.Visibility)
			return nil
		},
	}
}

type profileViewParams struct {
	cli.JSONOutput
}

func profileViewCommand(app *App) *cli.Command {
	var params profileViewParams
	return &cli.Command{
		Name:    "view",
		Summary: "Show another student's profile",
		Usage:   "campuscard profile view <user-id>",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args, "user-id"); err != nil {
				return err
			}
			userID, err := cli.ParseID(args[0], "user ID")
			if err != nil {
				return err
			}
			client, err := approvedClient(ctx, app, logger)
			if err != nil {
				return err
			}
			profile, err := client.UserProfile(ctx, userID)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(profile); done {
				return err
			}
			printProfile(profile)
			return nil
		},
	}
}
