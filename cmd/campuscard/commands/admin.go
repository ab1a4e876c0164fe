// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mohamed20o03/web/api"
	"github.com/mohamed20o03/web/cmd/campuscard/cli"
	"github.com/mohamed20o03/web/review"
	"github.com/mohamed20o03/web/session"
)

func adminCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "admin",
		Summary: "Review registrations and moderate content (admin role)",
		Subcommands: []*cli.Command{
			adminStatsCommand(app),
			adminUsersCommand(app),
			adminPendingCommand(app),
			adminShowCommand(app),
			adminApproveCommand(app),
			adminRejectCommand(app),
			adminRoleCommand(app),
			adminSendVerificationCommand(app),
			adminVerifyEmailCommand(app),
			adminReviewCommand(app),
			adminBannedWordsCommand(app),
			adminFlaggedCommand(app),
		},
	}
}

// adminClient returns a client after checking the scoped session's role.
func adminClient(ctx context.Context, app *App, logger *slog.Logger) (*api.Client, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return app.Client(logger)
}

// userArg parses the single <user-id> positional.
func userArg(args []string, extra ...string) (int64, error) {
	if err := cli.ExactArgs(args, append([]string{"user-id"}, extra...)...); err != nil {
		return 0, err
	}
	return cli.ParseID(args[0], "user ID")
}

func printUsers(users []api.UserApproval) {
	if len(users) == 0 {
		fmt.Fprintln(cli.Stdout, "No users.")
		return
	}
	table := newTable()
	fmt.Fprintln(table, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tVERIFIED\tREGISTERED")
	for _, user := range users {
		verified := "no"
		if user.EmailVerified {
			verified = "yes"
		}
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			user.ID, user.FullName(), user.Email, orDash(user.Role), statusBadge(user.Status), verified, orDash(user.RegistrationDate))
	}
	table.Flush()
}

func printUser(user *api.UserApproval) {
	table := newTable()
	fmt.Fprintf(table, "ID:\t%d\n", user.ID)
	fmt.Fprintf(table, "Name:\t%s\n", user.FullName())
	fmt.Fprintf(table, "Email:\t%s (verified: %t)\n", user.Email, user.EmailVerified)
	fmt.Fprintf(table, "National ID:\t%s\n", orDash(user.NationalID))
	fmt.Fprintf(table, "Role:\t%s\n", orDash(user.Role))
	fmt.Fprintf(table, "Status:\t%s\n", statusBadge(user.Status))
	fmt.Fprintf(table, "Faculty:\t%s\n", orDash(user.Faculty))
	fmt.Fprintf(table, "Department:\t%s\n", orDash(user.Department))
	if user.Year > 0 {
		fmt.Fprintf(table, "Year:\t%d\n", user.Year)
	}
	fmt.Fprintf(table, "ID scan:\t%s\n", orDash(user.NationalIDScanURL))
	fmt.Fprintf(table, "Registered:\t%s\n", orDash(user.RegistrationDate))
	table.Flush()
}

type adminStatsParams struct {
	cli.JSONOutput
}

func adminStatsCommand(app *App) *cli.Command {
	var params adminStatsParams
	return &cli.Command{
		Name:    "stats",
		Summary: "Show dashboard counters",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			stats, err := client.DashboardStats(ctx)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(stats); done {
				return err
			}
			table := newTable()
			fmt.Fprintf(table, "Users:\t%d\n", stats.TotalUsers)
			fmt.Fprintf(table, "Pending approval:\t%d\n", stats.PendingApprovals)
			fmt.Fprintf(table, "Approved:\t%d\n", stats.ApprovedUsers)
			fmt.Fprintf(table, "Rejected:\t%d\n", stats.RejectedUsers)
			fmt.Fprintf(table, "Students:\t%d\n", stats.StudentsCount)
			fmt.Fprintf(table, "Admins:\t%d\n", stats.AdminsCount)
			fmt.Fprintf(table, "Verified emails:\t%d\n", stats.VerifiedEmails)
			fmt.Fprintf(table, "Unverified emails:\t%d\n", stats.UnverifiedEmails)
			table.Flush()
			return nil
		},
	}
}

type adminUsersParams struct {
	cli.JSONOutput
	Status string `flag:"status" desc:"only users in this approval state (PENDING, APPROVED, REJECTED)"`
}

func adminUsersCommand(app *App) *cli.Command {
	var params adminUsersParams
	return &cli.Command{
		Name:    "users",
		Summary: "List every registered user",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			users, err := client.Users(ctx)
			if err != nil {
				return apiError(ctx, err)
			}
			if params.Status != "" {
				filtered := users[:0]
				for _, user := range users {
					if strings.EqualFold(user.Status, params.Status) {
						filtered = append(filtered, user)
					}
				}
				users = filtered
			}
			if done, err := params.EmitJSON(users); done {
				return err
			}
			printUsers(users)
			return nil
		},
	}
}

type adminPendingParams struct {
	cli.JSONOutput
}

func adminPendingCommand(app *App) *cli.Command {
	var params adminPendingParams
	return &cli.Command{
		Name:    "pending",
		Summary: "List registrations awaiting review",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			users, err := client.PendingUsers(ctx)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(users); done {
				return err
			}
			printUsers(users)
			return nil
		},
	}
}

type adminShowParams struct {
	cli.JSONOutput
}

func adminShowCommand(app *App) *cli.Command {
	var params adminShowParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show one user's registration details",
		Usage:   "campuscard admin show <user-id>",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			userID, err := userArg(args)
			if err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			user, err := client.User(ctx, userID)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(user); done {
				return err
			}
			printUser(user)
			return nil
		},
	}
}

func adminApproveCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "approve",
		Summary: "Approve a pending registration",
		Usage:   "campuscard admin approve <user-id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			userID, err := userArg(args)
			if err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			user, err := client.Approve(ctx, userID)
			if err != nil {
				return apiError(ctx, err)
			}
			logger.Info("registration approved", "user_id", userID)
			fmt.Fprintf(cli.Stdout, "Approved %s (%s).\n", user.FullName(), user.Email)
			return nil
		},
	}
}

type adminRejectParams struct {
	Reason string `flag:"reason,r" desc:"reason shown to the student"`
}

func adminRejectCommand(app *App) *cli.Command {
	var params adminRejectParams
	return &cli.Command{
		Name:    "reject",
		Summary: "Reject a pending registration",
		Usage:   "campuscard admin reject [--reason TEXT] <user-id>",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			userID, err := userArg(args)
			if err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			user, err := client.Reject(ctx, userID, strings.TrimSpace(params.Reason))
			if err != nil {
				return apiError(ctx, err)
			}
			logger.Info("registration rejected", "user_id", userID)
			fmt.Fprintf(cli.Stdout, "Rejected %s (%s).\n", user.FullName(), user.Email)
			return nil
		},
	}
}

func adminRoleCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "role",
		Summary: "Change a user's role",
		Usage:   "campuscard admin role <user-id> student|admin",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			userID, err := userArg(args, "role")
			if err != nil {
				return err
			}
			role := strings.ToUpper(args[1])
			if role != session.RoleStudent && role != session.RoleAdmin {
				return cli.Validation("invalid role %q: must be student or admin", args[1])
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			user, err := client.ChangeRole(ctx, userID, role)
			if err != nil {
				return apiError(ctx, err)
			}
			logger.Info("role changed", "user_id", userID, "role", role)
			fmt.Fprintf(cli.Stdout, "%s is now %s.\n", user.FullName(), orDash(user.Role))
			return nil
		},
	}
}

func adminSendVerificationCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "send-verification",
		Summary: "Email a verification link to a user",
		Usage:   "campuscard admin send-verification <user-id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			userID, err := userArg(args)
			if err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			response, err := client.SendVerification(ctx, userID)
			if err != nil {
				return apiError(ctx, err)
			}
			fmt.Fprintln(cli.Stdout, orDash(response.Message))
			if response.Token != "" {
				fmt.Fprintf(cli.Stdout, "Development token: %s\n", response.Token)
			}
			return nil
		},
	}
}

func adminVerifyEmailCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "verify-email",
		Summary: "Confirm a user's email with a verification token",
		Usage:   "campuscard admin verify-email <user-id> <token>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			userID, err := userArg(args, "token")
			if err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			message, err := client.VerifyEmail(ctx, userID, args[1])
			if err != nil {
				return apiError(ctx, err)
			}
			fmt.Fprintln(cli.Stdout, orDash(message))
			return nil
		},
	}
}

func adminReviewCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:    "review",
		Summary: "Work through pending registrations interactively",
		Description: `Open a terminal view of the pending queue. Move with the arrow keys,
press a to approve, r to reject with a reason, v to send a
verification email, R to refresh, and q to quit.`,
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			final, err := review.Run(ctx, client)
			if err != nil {
				return cli.Internal("%w", err)
			}
			if final.Unauthorized() {
				return apiError(ctx, final.Err())
			}
			if err := final.Err(); err != nil {
				logger.Debug("review ended with error", "error", err)
			}
			return nil
		},
	}
}

type bannedWordsParams struct {
	cli.JSONOutput
}

func adminBannedWordsCommand(app *App) *cli.Command {
	var params bannedWordsParams
	return &cli.Command{
		Name:    "banned-words",
		Summary: "List or edit the moderation word list",
		Usage:   "campuscard admin banned-words [add <word> | delete <word-id>]",
		Params:  func() any { return &params },
		Subcommands: []*cli.Command{
			{
				Name:    "add",
				Summary: "Add a banned word",
				Usage:   "campuscard admin banned-words add <word>",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					if err := cli.ExactArgs(args, "word"); err != nil {
						return err
					}
					word := strings.TrimSpace(args[0])
					if word == "" {
						return cli.Validation("word is empty")
					}
					client, err := adminClient(ctx, app, logger)
					if err != nil {
						return err
					}
					added, err := client.AddBannedWord(ctx, word)
					if err != nil {
						return apiError(ctx, err)
					}
					fmt.Fprintf(cli.Stdout, "Added %q (id %d).\n", added.Word, added.ID)
					return nil
				},
			},
			{
				Name:    "delete",
				Summary: "Remove a banned word",
				Usage:   "campuscard admin banned-words delete <word-id>",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					if err := cli.ExactArgs(args, "word-id"); err != nil {
						return err
					}
					wordID, err := cli.ParseID(args[0], "word ID")
					if err != nil {
						return err
					}
					client, err := adminClient(ctx, app, logger)
					if err != nil {
						return err
					}
					if err := client.DeleteBannedWord(ctx, wordID); err != nil {
						return apiError(ctx, err)
					}
					fmt.Fprintf(cli.Stdout, "Deleted word %d.\n", wordID)
					return nil
				},
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			words, err := client.BannedWords(ctx)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(words); done {
				return err
			}
			if len(words) == 0 {
				fmt.Fprintln(cli.Stdout, "No banned words.")
				return nil
			}
			table := newTable()
			fmt.Fprintln(table, "ID\tWORD\tADDED")
			for _, word := range words {
				fmt.Fprintf(table, "%d\t%s\t%s\n", word.ID, word.Word, orDash(word.AddedAt))
			}
			table.Flush()
			return nil
		},
	}
}

type adminFlaggedParams struct {
	cli.JSONOutput
}

func adminFlaggedCommand(app *App) *cli.Command {
	var params adminFlaggedParams
	return &cli.Command{
		Name:    "flagged",
		Summary: "List content caught by moderation",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExactArgs(args); err != nil {
				return err
			}
			client, err := adminClient(ctx, app, logger)
			if err != nil {
				return err
			}
			flagged, err := client.FlaggedContent(ctx)
			if err != nil {
				return apiError(ctx, err)
			}
			if done, err := params.EmitJSON(flagged); done {
				return err
			}
			if len(flagged) == 0 {
				fmt.Fprintln(cli.Stdout, "No flagged content.")
				return nil
			}
			table := newTable()
			fmt.Fprintln(table, "ID\tUSER\tFLAGGED\tCONTENT")
			for _, item := range flagged {
				fmt.Fprintf(table, "%d\t%s <%s>\t%s\t%s\n", item.ID, item.UserName, item.UserEmail, item.FlaggedAt, item.Content)
			}
			table.Flush()
			return nil
		},
	}
}
