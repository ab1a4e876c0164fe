// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mohamed20o03/web/api"
	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/directory"
)

func directoryCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "directory",
		Summary: "Browse students, faculties, and departments",
		Subcommands: []*cli.Command{
			directoryListCommand(app),
			facultiesCommand(app),
			departmentsCommand(app),
		},
	}
}

type directoryListParams struct {
	cli.JSONOutput
	Search  string `flag:"search,s" desc:"match names and faculty"`
	Faculty string `flag:"faculty,f" desc:"only students of this faculty (ALL for every faculty)"`
	Fuzzy   bool   `flag:"fuzzy" desc:"fuzzy-match --search and rank by score"`
}

func directoryListCommand(app *App) *cli.Command {
	var params directoryListParams
	return &cli.Command{
		Name:    "list",
		Summary: "List students visible to you",
		Description: `List the public student directory. --search matches "First Last" and
the faculty name case-insensitively; with --fuzzy the letters only need
to appear in order and results are ranked by match quality.`,
		Examples: []cli.Example{
			{Description: "Students in Engineering named like Hassan", Command: "campuscard directory list --faculty Engineering --search hassan"},
			{Description: "Fuzzy search", Command: "campuscard directory list --fuzzy -s hsn"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := approvedClient(ctx, app, logger)
			if err != nil {
				return err
			}
			lookups, err := app.Lookups(client)
			if err != nil {
				return err
			}

			var (
				profiles  []api.Profile
				faculties []api.Faculty
			)
			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				var err error
				profiles, err = client.PublicStudents(groupCtx)
				return err
			})
			if params.Faculty != "" && !strings.EqualFold(params.Faculty, directory.AllFaculties) {
				group.Go(func() error {
					var err error
					faculties, err = lookups.Faculties(groupCtx)
					return err
				})
			}
			if err := group.Wait(); err != nil {
				return apiError(ctx, err)
			}

			faculty := params.Faculty
			if strings.EqualFold(faculty, directory.AllFaculties) {
				faculty = directory.AllFaculties
			} else if faculty != "" {
				index := slices.IndexFunc(faculties, func(candidate api.Faculty) bool {
					return strings.EqualFold(candidate.Name, faculty)
				})
				if index < 0 {
					return cli.Validation("unknown faculty %q; run 'campuscard directory faculties'", faculty)
				}
				faculty = faculties[index].Name
			}

			matches := directory.Apply(profiles, directory.Filter{
				Query:   params.Search,
				Faculty: faculty,
				Fuzzy:   params.Fuzzy,
			})
			logger.Debug("directory filtered", "total", len(profiles), "matched", len(matches))

			if done, err := params.EmitJSON(directory.Profiles(matches)); done {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cli.Stdout, "No students found.")
				return nil
			}
			table := newTable()
			fmt.Fprintln(table, "ID\tNAME\tFACULTY\tDEPARTMENT\tYEAR")
			for _, match := range matches {
				profile := match.Profile
				year := "-"
				if profile.Year > 0 {
					year = fmt.Sprint(profile.Year)
				}
				id := profile.UserID
				if id == 0 {
					id = profile.ID
				}
				fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n",
					id, profile.FullName(), orDash(profile.Faculty), orDash(profile.Department), year)
			}
			table.Flush()
			return nil
		},
	}
}

type facultiesParams struct {
	cli.JSONOutput
}

func facultiesCommand(app *App) *cli.Command {
	var params facultiesParams
	return &cli.Command{
		Name:    "faculties",
		Summary: "List faculties (no login required)",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := app.Client(logger)
			if err != nil {
				return err
			}
			lookups, err := app.Lookups(client)
			if err != nil {
				return err
			}
			faculties, err := lookups.Faculties(ctx)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(faculties); done {
				return err
			}
			table := newTable()
			fmt.Fprintln(table, "ID\tNAME\tYEARS")
			for _, faculty := range faculties {
				fmt.Fprintf(table, "%d\t%s\t%d\n", faculty.ID, faculty.Name, faculty.Years)
			}
			table.Flush()
			return nil
		},
	}
}

type departmentsParams struct {
	cli.JSONOutput
	FacultyID int64  `flag:"faculty-id" desc:"only departments of this faculty"`
	Faculty   string `flag:"faculty" desc:"only departments of the faculty with this name"`
}

func departmentsCommand(app *App) *cli.Command {
	var params departmentsParams
	return &cli.Command{
		Name:    "departments",
		Summary: "List departments (no login required)",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := app.Client(logger)
			if err != nil {
				return err
			}
			lookups, err := app.Lookups(client)
			if err != nil {
				return err
			}

			facultyID := params.FacultyID
			if params.Faculty != "" {
				faculty, err := lookups.FacultyByName(ctx, params.Faculty)
				if api.KindOf(err) != "" {
					return apiError(ctx, err)
				}
				if err != nil {
					return cli.Validation("unknown faculty %q; run 'campuscard directory faculties'", params.Faculty)
				}
				facultyID = faculty.ID
			}

			departments, err := lookups.Departments(ctx, facultyID)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(departments); done {
				return err
			}
			table := newTable()
			fmt.Fprintln(table, "ID\tNAME\tFACULTY")
			for _, department := range departments {
				fmt.Fprintf(table, "%d\t%s\t%d\n", department.ID, department.Name, department.FacultyID)
			}
			table.Flush()
			return nil
		},
	}
}
