// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Login exchanges credentials for a bearer token. It does not touch the
// session store: callers persist LoginResponse.Session() themselves,
// normally through session.Context.SetSession.
func (c *Client) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	var response LoginResponse
	err := c.call(ctx, "login", Request{
		Method:   http.MethodPost,
		Path:     "/api/login",
		JSON:     request,
		SkipAuth: true,
	}, &response)
	if err != nil {
		return nil, err
	}
	if response.Token == "" {
		return nil, fmt.Errorf("api: login: response carried no token")
	}
	return &response, nil
}

// Signup registers a new student. The national ID scan is required by
// the backend.
func (c *Client) Signup(ctx context.Context, request SignupRequest, idScan Upload) (*SignupResponse, error) {
	form := NewForm().
		Field("firstName", request.FirstName).
		Field("lastName", request.LastName).
		Field("dateOfBirth", request.DateOfBirth).
		Field("email", request.Email).
		Field("password", request.Password).
		Field("nationalId", request.NationalID).
		Field("facultyId", strconv.FormatInt(request.FacultyID, 10)).
		Field("departmentId", strconv.FormatInt(request.DepartmentID, 10)).
		Field("year", strconv.Itoa(request.Year)).
		File("nationalIdScan", idScan.Filename, idScan.ContentType, idScan.Data)

	var response SignupResponse
	err := c.call(ctx, "signup", Request{
		Method:   http.MethodPost,
		Path:     "/api/signup",
		Form:     form,
		SkipAuth: true,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// UploadProfilePhoto replaces the current user's profile photo.
func (c *Client) UploadProfilePhoto(ctx context.Context, photo Upload) (*PhotoResponse, error) {
	var response PhotoResponse
	err := c.call(ctx, "upload profile photo", Request{
		Method: http.MethodPost,
		Path:   "/api/profile/photo",
		Form:   NewForm().File("file", photo.Filename, photo.ContentType, photo.Data),
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// UploadNationalIDScan replaces the current user's national ID scan.
func (c *Client) UploadNationalIDScan(ctx context.Context, scan Upload) (*ScanResponse, error) {
	var response ScanResponse
	err := c.call(ctx, "upload national ID scan", Request{
		Method: http.MethodPost,
		Path:   "/api/profile/national-id-scan",
		Form:   NewForm().File("file", scan.Filename, scan.ContentType, scan.Data),
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
