// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/mohamed20o03/web/lib/netutil"
	"github.com/mohamed20o03/web/session"
)

// RequestIDHeader carries a per-request UUID for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the backend origin, e.g. "https://campuscard.example.edu".
	// Request paths are appended to it verbatim.
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Session supplies the bearer token and is cleared on a 401. If nil,
	// an in-memory store is used.
	Session session.Store
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client talks to the CampusCard backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     *slog.Logger
}

// NewClient creates a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL %q must use http or https", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	store := config.Session
	if store == nil {
		store = session.NewMemoryStore()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}, nil
}

// Session returns the store the client reads tokens from.
func (c *Client) Session() session.Store { return c.store }

// BaseURL returns the configured origin without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Request describes one backend call.
type Request struct {
	// Method defaults to GET.
	Method string
	// Path is appended to the base URL, e.g. "/api/profile".
	Path string
	// Query is encoded onto the URL when non-empty.
	Query url.Values
	// JSON, when non-nil, is encoded as the request body with
	// Content-Type application/json.
	JSON any
	// Form, when non-nil, is sent as multipart/form-data. JSON and Form
	// are mutually exclusive.
	Form *Form
	// Header entries are sent as given and take precedence over the
	// defaults, including Content-Type.
	Header http.Header
	// SkipAuth omits the bearer credential even when a session exists.
	SkipAuth bool
}

// Do sends request and returns the parsed response body. Failures are
// returned as *Error, except for requests that cannot be built at all
// (an unencodable JSON body, both JSON and Form set), which are plain
// errors returned before any network I/O.
//
// A 401 response clears the session store before Do returns.
func (c *Client) Do(ctx context.Context, request Request) (Payload, error) {
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}

	requestURL := c.baseURL + request.Path
	if len(request.Query) > 0 {
		requestURL += "?" + request.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case request.JSON != nil && request.Form != nil:
		return Payload{}, fmt.Errorf("api: %s %s: request has both a JSON body and a form", method, request.Path)
	case request.JSON != nil:
		encoded, err := json.Marshal(request.JSON)
		if err != nil {
			return Payload{}, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	case request.Form != nil:
		encoded, formType, err := request.Form.encode()
		if err != nil {
			return Payload{}, fmt.Errorf("api: failed to encode form: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = formType
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return Payload{}, fmt.Errorf("api: failed to create request: %w", err)
	}

	if contentType != "" {
		httpRequest.Header.Set("Content-Type", contentType)
	}
	httpRequest.Header.Set(RequestIDHeader, uuid.NewString())
	for key, values := range request.Header {
		httpRequest.Header[http.CanonicalHeaderKey(key)] = values
	}

	authenticated := false
	if !request.SkipAuth {
		if token, ok := session.Token(c.store); ok {
			httpRequest.Header.Set("Authorization", "Bearer "+token)
			authenticated = true
		}
	}

	logger := c.logger.With(
		"method", method,
		"path", request.Path,
		"request_id", httpRequest.Header.Get(RequestIDHeader),
	)

	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		logger.Debug("request failed", "error", err)
		return Payload{}, networkError(err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		logger.Debug("reading response failed", "status", response.StatusCode, "error", err)
		return Payload{}, networkError(err)
	}
	payload := ParsePayload(responseBody)

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		logger.Debug("request succeeded", "status", response.StatusCode, "authenticated", authenticated)
		return payload, nil
	}

	if response.StatusCode == http.StatusUnauthorized {
		if err := c.store.Clear(); err != nil {
			logger.Error("clearing session after 401 failed", "error", err)
		} else {
			logger.Info("session cleared after 401", "authenticated", authenticated)
		}
	}

	apiErr := Normalize(response.StatusCode, payload)
	logger.Debug("request rejected", "status", response.StatusCode, "kind", apiErr.Kind)
	return Payload{}, apiErr
}

// call sends request and decodes a successful body into out (which may
// be nil). op names the operation in wrapped errors.
func (c *Client) call(ctx context.Context, op string, request Request, out any) error {
	payload, err := c.Do(ctx, request)
	if err != nil {
		return fmt.Errorf("api: %s: %w", op, err)
	}
	if out == nil {
		return nil
	}
	if err := payload.Decode(out); err != nil {
		return fmt.Errorf("api: %s: %w", op, err)
	}
	return nil
}

// IsCanceled reports whether err is a network failure caused by the
// caller's context being canceled or timing out.
func IsCanceled(err error) bool {
	return IsKind(err, KindNetwork) &&
		(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
