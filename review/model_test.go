// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mohamed20o03/web/api"
)

type fakeReviewer struct {
	pending  []api.UserApproval
	err      error
	approved []int64
	rejected map[int64]string
	verified []int64
}

func (f *fakeReviewer) PendingUsers(context.Context) ([]api.UserApproval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]api.UserApproval(nil), f.pending...), nil
}

func (f *fakeReviewer) Approve(_ context.Context, userID int64) (*api.UserApproval, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.approved = append(f.approved, userID)
	return &api.UserApproval{ID: userID, Status: "APPROVED"}, nil
}

func (f *fakeReviewer) Reject(_ context.Context, userID int64, reason string) (*api.UserApproval, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rejected == nil {
		f.rejected = make(map[int64]string)
	}
	f.rejected[userID] = reason
	return &api.UserApproval{ID: userID, Status: "REJECTED"}, nil
}

func (f *fakeReviewer) SendVerification(_ context.Context, userID int64) (*api.VerificationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.verified = append(f.verified, userID)
	return &api.VerificationResponse{Message: "sent", Token: "dev-token"}, nil
}

func testReviewer() *fakeReviewer {
	return &fakeReviewer{pending: []api.UserApproval{
		{ID: 1, FirstName: "Mona", LastName: "Ali", Email: "mona@eng.psu.edu.eg", Status: "PENDING", Faculty: "Engineering"},
		{ID: 2, FirstName: "Omar", LastName: "Khaled", Email: "omar@eng.psu.edu.eg", Status: "PENDING", EmailVerified: true},
		{ID: 3, Email: "anon@eng.psu.edu.eg", Status: "PENDING"},
	}}
}

// run executes cmd (and any batch it expands to) and feeds resulting
// messages back into the model.
func run(t *testing.T, model Model, command tea.Cmd) Model {
	t.Helper()
	for command != nil {
		message := command()
		if message == nil {
			return model
		}
		if _, ok := message.(tea.QuitMsg); ok {
			return model
		}
		var next tea.Model
		next, command = model.Update(message)
		model = next.(Model)
	}
	return model
}

func press(t *testing.T, model Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	var message tea.KeyMsg
	switch keys {
	case "enter":
		message = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		message = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		message = tea.KeyMsg{Type: tea.KeyDown}
	default:
		message = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, command := model.Update(message)
	return next.(Model), command
}

func loaded(t *testing.T, reviewer Reviewer) Model {
	t.Helper()
	model := NewModel(context.Background(), reviewer)
	return run(t, model, model.Init())
}

func TestLoadsPendingUsers(t *testing.T) {
	model := loaded(t, testReviewer())
	if len(model.Users()) != 3 {
		t.Fatalf("got %d users, want 3", len(model.Users()))
	}
	view := model.View()
	if !strings.Contains(view, "Pending registrations (3)") {
		t.Errorf("view missing header:\n%s", view)
	}
	if !strings.Contains(view, "Mona Ali") || !strings.Contains(view, "anon@eng.psu.edu.eg") {
		t.Errorf("view missing rows:\n%s", view)
	}
}

func TestCursorNavigation(t *testing.T) {
	model := loaded(t, testReviewer())
	model, _ = press(t, model, "j")
	model, _ = press(t, model, "down")
	model, _ = press(t, model, "j")
	if user, _ := model.Selected(); user.ID != 3 {
		t.Errorf("selected %d after moving past the end, want 3", user.ID)
	}
	model, _ = press(t, model, "k")
	if user, _ := model.Selected(); user.ID != 2 {
		t.Errorf("selected %d, want 2", user.ID)
	}
}

func TestApproveRemovesUser(t *testing.T) {
	reviewer := testReviewer()
	model := loaded(t, reviewer)

	model, command := press(t, model, "a")
	model = run(t, model, command)

	if len(reviewer.approved) != 1 || reviewer.approved[0] != 1 {
		t.Fatalf("approved = %v, want [1]", reviewer.approved)
	}
	if len(model.Users()) != 2 {
		t.Errorf("got %d users after approve, want 2", len(model.Users()))
	}
	if user, _ := model.Selected(); user.ID != 2 {
		t.Errorf("cursor on %d, want next user 2", user.ID)
	}
	if !strings.Contains(model.View(), "Approved") {
		t.Errorf("view missing approval notice:\n%s", model.View())
	}
}

func TestRejectWithReason(t *testing.T) {
	reviewer := testReviewer()
	model := loaded(t, reviewer)
	model, _ = press(t, model, "j")

	model, _ = press(t, model, "r")
	if model.mode != modeReason {
		t.Fatal("r did not open the reason prompt")
	}
	for _, character := range "blurry scan" {
		model, _ = press(t, model, string(character))
	}
	model, command := press(t, model, "enter")
	model = run(t, model, command)

	if reason, ok := reviewer.rejected[2]; !ok || reason != "blurry scan" {
		t.Errorf("rejected = %v, want user 2 with reason", reviewer.rejected)
	}
	if model.mode != modeBrowse {
		t.Error("still in reason mode after confirm")
	}
	if len(model.Users()) != 2 {
		t.Errorf("got %d users, want 2", len(model.Users()))
	}
}

func TestRejectCancel(t *testing.T) {
	reviewer := testReviewer()
	model := loaded(t, reviewer)
	model, _ = press(t, model, "r")
	model, _ = press(t, model, "x")
	model, command := press(t, model, "esc")
	model = run(t, model, command)

	if len(reviewer.rejected) != 0 {
		t.Errorf("cancel still rejected: %v", reviewer.rejected)
	}
	if model.mode != modeBrowse || len(model.Users()) != 3 {
		t.Errorf("mode=%v users=%d after cancel", model.mode, len(model.Users()))
	}
}

func TestSendVerification(t *testing.T) {
	reviewer := testReviewer()
	model := loaded(t, reviewer)
	model, command := press(t, model, "v")
	model = run(t, model, command)

	if len(reviewer.verified) != 1 || reviewer.verified[0] != 1 {
		t.Errorf("verified = %v, want [1]", reviewer.verified)
	}
	if !strings.Contains(model.View(), "dev-token") {
		t.Errorf("view missing development token:\n%s", model.View())
	}
	if len(model.Users()) != 3 {
		t.Error("verification removed the user from the queue")
	}
}

func TestUnauthorizedQuits(t *testing.T) {
	reviewer := testReviewer()
	model := loaded(t, reviewer)

	reviewer.err = api.Normalize(401, api.Payload{})
	model, command := press(t, model, "a")
	message := command()
	next, command := model.Update(message)
	model = next.(Model)

	if !model.Unauthorized() {
		t.Error("Unauthorized() = false after a 401")
	}
	if command == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Error("command did not quit")
	}
}

func TestOtherErrorsStay(t *testing.T) {
	reviewer := testReviewer()
	reviewer.err = errors.New("boom")
	model := loaded(t, reviewer)

	if model.Err() == nil {
		t.Fatal("load error not recorded")
	}
	if model.Unauthorized() {
		t.Error("plain error treated as unauthorized")
	}
	if !strings.Contains(model.View(), "boom") {
		t.Errorf("view missing error:\n%s", model.View())
	}

	reviewer.err = nil
	model, command := press(t, model, "R")
	model = run(t, model, command)
	if model.Err() != nil || len(model.Users()) != 3 {
		t.Errorf("refresh did not recover: err=%v users=%d", model.Err(), len(model.Users()))
	}
}

func TestEmptyQueue(t *testing.T) {
	model := loaded(t, &fakeReviewer{})
	if !strings.Contains(model.View(), "No registrations awaiting review.") {
		t.Errorf("view:\n%s", model.View())
	}
	model, command := press(t, model, "a")
	if command != nil {
		t.Error("approve on empty queue issued a command")
	}
	_ = model
}
