// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.call(ctx, "get profile", Request{Path: "/api/profile"}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies update to the current user's profile and
// returns the result.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	err := c.call(ctx, "update profile", Request{
		Method: http.MethodPut,
		Path:   "/api/profile",
		JSON:   update,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateVisibility sets who may see the current user's profile.
func (c *Client) UpdateVisibility(ctx context.Context, visibility string) (*Profile, error) {
	var profile Profile
	err := c.call(ctx, "update visibility", Request{
		Method: http.MethodPut,
		Path:   "/api/profile/visibility",
		JSON:   map[string]string{"visibility": visibility},
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UserProfile fetches another user's profile, subject to its
// visibility.
func (c *Client) UserProfile(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	err := c.call(ctx, fmt.Sprintf("get profile %d", userID), Request{
		Path: "/api/profile/" + strconv.FormatInt(userID, 10),
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// PublicStudents lists the profiles of approved students visible to the
// caller.
func (c *Client) PublicStudents(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	if err := c.call(ctx, "list students", Request{Path: "/api/profile/public-students"}, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
