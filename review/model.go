// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mohamed20o03/web/api"
)

// Reviewer is the backend surface the review queue needs.
type Reviewer interface {
	PendingUsers(ctx context.Context) ([]api.UserApproval, error)
	Approve(ctx context.Context, userID int64) (*api.UserApproval, error)
	Reject(ctx context.Context, userID int64, reason string) (*api.UserApproval, error)
	SendVerification(ctx context.Context, userID int64) (*api.VerificationResponse, error)
}

var _ Reviewer = (*api.Client)(nil)

type mode int

const (
	modeBrowse mode = iota
	modeReason
)

// Messages delivered by commands.
type (
	usersLoadedMsg struct {
		users []api.UserApproval
		err   error
	}
	decidedMsg struct {
		user     api.UserApproval
		approved bool
		err      error
	}
	verificationSentMsg struct {
		user     api.UserApproval
		response *api.VerificationResponse
		err      error
	}
)

// Model is the bubbletea model of the review queue.
type Model struct {
	ctx      context.Context
	reviewer Reviewer
	keys     KeyMap
	theme    Theme

	users   []api.UserApproval
	cursor  int
	loading bool
	busy    bool

	mode   mode
	reason textinput.Model

	notice       string
	err          error
	unauthorized bool

	width  int
	height int
}

// NewModel creates a review queue backed by reviewer. ctx bounds every
// request the model issues.
func NewModel(ctx context.Context, reviewer Reviewer) Model {
	reason := textinput.New()
	reason.Placeholder = "reason (optional)"
	reason.CharLimit = 500
	reason.Prompt = "Rejection reason: "

	return Model{
		ctx:      ctx,
		reviewer: reviewer,
		keys:     DefaultKeyMap,
		theme:    DefaultTheme,
		reason:   reason,
		loading:  true,
		width:    80,
		height:   24,
	}
}

// Unauthorized reports whether the program ended because the session
// was rejected.
func (model Model) Unauthorized() bool { return model.unauthorized }

// Err returns the last request failure, if any.
func (model Model) Err() error { return model.err }

// Users returns the users currently listed.
func (model Model) Users() []api.UserApproval { return model.users }

// Selected returns the user under the cursor.
func (model Model) Selected() (api.UserApproval, bool) {
	if model.cursor < 0 || model.cursor >= len(model.users) {
		return api.UserApproval{}, false
	}
	return model.users[model.cursor], true
}

// Init implements tea.Model. Loads the pending queue.
func (model Model) Init() tea.Cmd {
	return model.load()
}

func (model Model) load() tea.Cmd {
	return func() tea.Msg {
		users, err := model.reviewer.PendingUsers(model.ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (model Model) decide(user api.UserApproval, approved bool, reason string) tea.Cmd {
	return func() tea.Msg {
		var (
			updated *api.UserApproval
			err     error
		)
		if approved {
			updated, err = model.reviewer.Approve(model.ctx, user.ID)
		} else {
			updated, err = model.reviewer.Reject(model.ctx, user.ID, reason)
		}
		if updated != nil {
			user = *updated
		}
		return decidedMsg{user: user, approved: approved, err: err}
	}
}

func (model Model) sendVerification(user api.UserApproval) tea.Cmd {
	return func() tea.Msg {
		response, err := model.reviewer.SendVerification(model.ctx, user.ID)
		return verificationSentMsg{user: user, response: response, err: err}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case usersLoadedMsg:
		model.loading = false
		if message.err != nil {
			return model.fail(message.err)
		}
		model.err = nil
		model.users = message.users
		model.clampCursor()
		return model, nil

	case decidedMsg:
		model.busy = false
		if message.err != nil {
			return model.fail(message.err)
		}
		model.err = nil
		model.removeUser(message.user.ID)
		verb := "Rejected"
		if message.approved {
			verb = "Approved"
		}
		model.notice = fmt.Sprintf("%s %s", verb, displayName(message.user))
		return model, nil

	case verificationSentMsg:
		model.busy = false
		if message.err != nil {
			return model.fail(message.err)
		}
		model.err = nil
		model.notice = "Verification email sent to " + message.user.Email
		if message.response != nil && message.response.Token != "" {
			model.notice += " (token " + message.response.Token + ")"
		}
		return model, nil

	case tea.KeyMsg:
		if model.mode == modeReason {
			return model.handleReasonKeys(message)
		}
		return model.handleBrowseKeys(message)
	}
	return model, nil
}

func (model Model) handleBrowseKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.users)-1 {
			model.cursor++
		}
		return model, nil

	case key.Matches(message, model.keys.Refresh):
		if model.busy {
			return model, nil
		}
		model.loading = true
		model.notice = ""
		return model, model.load()
	}

	user, ok := model.Selected()
	if !ok || model.busy {
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Approve):
		model.busy = true
		model.notice = "Approving " + displayName(user) + "..."
		return model, model.decide(user, true, "")

	case key.Matches(message, model.keys.Reject):
		model.mode = modeReason
		model.reason.Reset()
		return model, model.reason.Focus()

	case key.Matches(message, model.keys.Verify):
		model.busy = true
		model.notice = "Sending verification to " + user.Email + "..."
		return model, model.sendVerification(user)
	}
	return model, nil
}

func (model Model) handleReasonKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.mode = modeBrowse
		model.reason.Blur()
		return model, nil

	case key.Matches(message, model.keys.Confirm):
		model.mode = modeBrowse
		model.reason.Blur()
		user, ok := model.Selected()
		if !ok {
			return model, nil
		}
		model.busy = true
		model.notice = "Rejecting " + displayName(user) + "..."
		return model, model.decide(user, false, strings.TrimSpace(model.reason.Value()))
	}

	var command tea.Cmd
	model.reason, command = model.reason.Update(message)
	return model, command
}

// fail records err. An unauthorized error ends the program.
func (model Model) fail(err error) (tea.Model, tea.Cmd) {
	model.err = err
	model.notice = ""
	if api.IsKind(err, api.KindUnauthorized) {
		model.unauthorized = true
		return model, tea.Quit
	}
	return model, nil
}

func (model *Model) removeUser(userID int64) {
	for index, user := range model.users {
		if user.ID == userID {
			model.users = append(model.users[:index:index], model.users[index+1:]...)
			break
		}
	}
	model.clampCursor()
}

func (model *Model) clampCursor() {
	if model.cursor >= len(model.users) {
		model.cursor = len(model.users) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func displayName(user api.UserApproval) string {
	if name := user.FullName(); name != "" {
		return name
	}
	return user.Email
}

// View implements tea.Model.
func (model Model) View() string {
	var builder strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	builder.WriteString(header.Render(fmt.Sprintf("Pending registrations (%d)", len(model.users))))
	builder.WriteString("\n\n")

	switch {
	case model.loading:
		builder.WriteString(model.faint("Loading..."))
		builder.WriteString("\n")
	case len(model.users) == 0:
		builder.WriteString(model.faint("No registrations awaiting review."))
		builder.WriteString("\n")
	default:
		builder.WriteString(model.renderList())
		builder.WriteString("\n")
		builder.WriteString(model.renderDetail())
	}

	builder.WriteString("\n")
	if model.err != nil {
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.ErrorForeground).
			Render(ansi.Truncate(model.err.Error(), model.width, "…")))
		builder.WriteString("\n")
	} else if model.notice != "" {
		builder.WriteString(ansi.Truncate(model.notice, model.width, "…"))
		builder.WriteString("\n")
	}

	if model.mode == modeReason {
		builder.WriteString(model.reason.View())
		builder.WriteString("\n")
		builder.WriteString(model.renderHelp(model.keys.reasonHelp()))
	} else {
		builder.WriteString(model.renderHelp(model.keys.browseHelp()))
	}
	return builder.String()
}

// visibleRows is the number of list rows that fit around the header,
// detail, and help lines.
func (model Model) visibleRows() int {
	rows := model.height - 10
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (model Model) renderList() string {
	rows := model.visibleRows()
	start := 0
	if model.cursor >= rows {
		start = model.cursor - rows + 1
	}
	end := min(start+rows, len(model.users))

	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)

	var builder strings.Builder
	for index := start; index < end; index++ {
		user := model.users[index]
		verified := " "
		if user.EmailVerified {
			verified = "✓"
		}
		row := fmt.Sprintf("%s %-24s %-32s %s", verified, displayName(user), user.Email, user.Faculty)
		row = ansi.Truncate(row, model.width-2, "…")

		cursor := "  "
		style := normal
		if index == model.cursor {
			cursor = "> "
			style = selected
		}
		builder.WriteString(cursor + style.Render(row) + "\n")
	}
	return builder.String()
}

func (model Model) renderDetail() string {
	user, ok := model.Selected()
	if !ok {
		return ""
	}
	status := lipgloss.NewStyle().Foreground(model.theme.StatusColor(user.Status)).Render(user.Status)
	fields := []string{
		status,
		"national ID " + user.NationalID,
	}
	if user.Department != "" {
		fields = append(fields, user.Department)
	}
	if user.Year > 0 {
		fields = append(fields, fmt.Sprintf("year %d", user.Year))
	}
	if user.RegistrationDate != "" {
		fields = append(fields, "registered "+user.RegistrationDate)
	}
	line := strings.Join(fields, " · ")
	detail := ansi.Truncate(line, model.width, "…") + "\n"
	if user.NationalIDScanURL != "" {
		detail += model.faint(ansi.Truncate("scan: "+user.NationalIDScanURL, model.width, "…")) + "\n"
	}
	return detail
}

func (model Model) renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return style.Render(ansi.Truncate(strings.Join(parts, "  "), model.width, "…"))
}

func (model Model) faint(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}
