// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Admin endpoints. The backend answers 403 for non-admin sessions.

func userPath(userID int64, suffix string) string {
	return "/api/admin/users/" + strconv.FormatInt(userID, 10) + suffix
}

// DashboardStats returns user counts for the admin dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.call(ctx, "dashboard stats", Request{Path: "/api/admin/dashboard/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Users lists every registered user.
func (c *Client) Users(ctx context.Context) ([]UserApproval, error) {
	var users []UserApproval
	if err := c.call(ctx, "list users", Request{Path: "/api/admin/users"}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PendingUsers lists registrations awaiting a decision.
func (c *Client) PendingUsers(ctx context.Context) ([]UserApproval, error) {
	var users []UserApproval
	if err := c.call(ctx, "list pending users", Request{Path: "/api/admin/users/pending"}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User fetches one user's registration details.
func (c *Client) User(ctx context.Context, userID int64) (*UserApproval, error) {
	var user UserApproval
	if err := c.call(ctx, fmt.Sprintf("get user %d", userID), Request{Path: userPath(userID, "")}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DecideApproval records an approval decision and returns the updated
// user.
func (c *Client) DecideApproval(ctx context.Context, decision ApprovalDecision) (*UserApproval, error) {
	if decision.Approved {
		decision.RejectionReason = ""
	}
	var user UserApproval
	err := c.call(ctx, fmt.Sprintf("decide approval for user %d", decision.UserID), Request{
		Method: http.MethodPost,
		Path:   "/api/admin/users/approve-reject",
		JSON:   decision,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Approve approves a pending registration.
func (c *Client) Approve(ctx context.Context, userID int64) (*UserApproval, error) {
	return c.DecideApproval(ctx, ApprovalDecision{UserID: userID, Approved: true})
}

// Reject rejects a pending registration. reason may be empty.
func (c *Client) Reject(ctx context.Context, userID int64, reason string) (*UserApproval, error) {
	return c.DecideApproval(ctx, ApprovalDecision{UserID: userID, RejectionReason: reason})
}

// SendVerification emails a verification link to the user.
func (c *Client) SendVerification(ctx context.Context, userID int64) (*VerificationResponse, error) {
	var response VerificationResponse
	err := c.call(ctx, fmt.Sprintf("send verification to user %d", userID), Request{
		Method: http.MethodPost,
		Path:   userPath(userID, "/send-verification"),
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// VerifyEmail confirms a user's email address with the token from the
// verification email and returns the backend's message.
func (c *Client) VerifyEmail(ctx context.Context, userID int64, token string) (string, error) {
	var response messageResponse
	err := c.call(ctx, fmt.Sprintf("verify email of user %d", userID), Request{
		Method: http.MethodPost,
		Path:   userPath(userID, "/verify-email/"+url.PathEscape(token)),
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Message, nil
}

// ChangeRole sets a user's role (STUDENT or ADMIN).
func (c *Client) ChangeRole(ctx context.Context, userID int64, role string) (*UserApproval, error) {
	var user UserApproval
	err := c.call(ctx, fmt.Sprintf("change role of user %d", userID), Request{
		Method: http.MethodPost,
		Path:   userPath(userID, "/change-role"),
		JSON:   map[string]string{"role": role},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// BannedWords lists the moderation word list.
func (c *Client) BannedWords(ctx context.Context) ([]BannedWord, error) {
	var words []BannedWord
	if err := c.call(ctx, "list banned words", Request{Path: "/api/admin/banned-words"}, &words); err != nil {
		return nil, err
	}
	return words, nil
}

// AddBannedWord adds word to the moderation list.
func (c *Client) AddBannedWord(ctx context.Context, word string) (*BannedWord, error) {
	var added BannedWord
	err := c.call(ctx, "add banned word", Request{
		Method: http.MethodPost,
		Path:   "/api/admin/banned-words",
		JSON:   map[string]string{"word": word},
	}, &added)
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// DeleteBannedWord removes a word from the moderation list.
func (c *Client) DeleteBannedWord(ctx context.Context, wordID int64) error {
	return c.call(ctx, fmt.Sprintf("delete banned word %d", wordID), Request{
		Method: http.MethodDelete,
		Path:   "/api/admin/banned-words/" + strconv.FormatInt(wordID, 10),
	}, nil)
}

// FlaggedContent lists content caught by moderation.
func (c *Client) FlaggedContent(ctx context.Context) ([]FlaggedContent, error) {
	var content []FlaggedContent
	if err := c.call(ctx, "list flagged content", Request{Path: "/api/admin/flagged-content"}, &content); err != nil {
		return nil, err
	}
	return content, nil
}
