// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"
)

// Faculties lists all faculties. No credential is sent.
func (c *Client) Faculties(ctx context.Context) ([]Faculty, error) {
	var faculties []Faculty
	err := c.call(ctx, "list faculties", Request{
		Path:     "/api/public/faculties",
		SkipAuth: true,
	}, &faculties)
	if err != nil {
		return nil, err
	}
	return faculties, nil
}

// Departments lists departments, restricted to one faculty when
// facultyID is positive. No credential is sent.
func (c *Client) Departments(ctx context.Context, facultyID int64) ([]Department, error) {
	request := Request{
		Path:     "/api/public/departments",
		SkipAuth: true,
	}
	if facultyID > 0 {
		request.Query = url.Values{"facultyId": {strconv.FormatInt(facultyID, 10)}}
	}
	var departments []Department
	if err := c.call(ctx, "list departments", request, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}
