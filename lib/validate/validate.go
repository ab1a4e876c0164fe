// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate checks CampusCard form input before it is sent, so
// the CLI can report every problem at once instead of one 400 at a time.
// The rules mirror the backend's constraints; the backend remains the
// authority.
package validate

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Limits enforced by the backend.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
	MaxNameLength     = 50
	MaxEmailLength    = 255
	MaxBioLength      = 500
	MaxInterestsLen   = 500
	MaxImageBytes     = 10 << 20

	// EmailDomain is the only domain accepted at signup.
	EmailDomain = "@eng.psu.edu.eg"
)

// Profile visibility levels.
const (
	VisibilityPublic       = "PUBLIC"
	VisibilityStudentsOnly = "STUDENTS_ONLY"
	VisibilityPrivate      = "PRIVATE"
)

// Visibilities lists the accepted visibility values.
var Visibilities = []string{VisibilityPublic, VisibilityStudentsOnly, VisibilityPrivate}

// ImageTypes lists the accepted upload content types.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var (
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@eng\.psu\.edu\.eg$`)
	nationalIDPattern = regexp.MustCompile(`^\d{14}$`)
	phonePattern      = regexp.MustCompile(`^[+]?[0-9]{10,20}$`)
	linkedinPattern   = regexp.MustCompile(`^(https?://)?(www\.)?linkedin\.com/.+$`)
	githubPattern     = regexp.MustCompile(`^(https?://)?(www\.)?github\.com/.+$`)
)

// ErrRequired is returned for empty mandatory fields.
var ErrRequired = errors.New("this field is required")

// Email checks a signup email address.
func Email(value string) error {
	if value == "" {
		return ErrRequired
	}
	if len(value) > MaxEmailLength {
		return fmt.Errorf("must be at most %d characters", MaxEmailLength)
	}
	if !emailPattern.MatchString(value) {
		return fmt.Errorf("must be a valid PSU address (%s)", EmailDomain)
	}
	return nil
}

// NationalID checks a 14-digit national ID number.
func NationalID(value string) error {
	if value == "" {
		return ErrRequired
	}
	if !nationalIDPattern.MatchString(value) {
		return errors.New("must be exactly 14 digits")
	}
	return nil
}

// Password checks password length.
func Password(value []byte) error {
	length := utf8.RuneCount(value)
	if length == 0 {
		return ErrRequired
	}
	if length < MinPasswordLength {
		return fmt.Errorf("must be at least %d characters", MinPasswordLength)
	}
	if length > MaxPasswordLength {
		return fmt.Errorf("must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// Name checks a required first or last name.
func Name(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	return maxLength(value, MaxNameLength)
}

// Bio checks the optional biography.
func Bio(value string) error { return maxLength(value, MaxBioLength) }

// Interests checks the optional interests text.
func Interests(value string) error { return maxLength(value, MaxInterestsLen) }

// Phone checks an optional phone number.
func Phone(value string) error {
	if value == "" {
		return nil
	}
	if !phonePattern.MatchString(value) {
		return errors.New("must be 10 to 20 digits with an optional leading +")
	}
	return nil
}

// LinkedIn checks an optional LinkedIn profile URL.
func LinkedIn(value string) error {
	if value == "" || linkedinPattern.MatchString(value) {
		return nil
	}
	return errors.New("must be a linkedin.com URL")
}

// GitHub checks an optional GitHub profile URL.
func GitHub(value string) error {
	if value == "" || githubPattern.MatchString(value) {
		return nil
	}
	return errors.New("must be a github.com URL")
}

// Visibility checks a profile visibility value.
func Visibility(value string) error {
	if slices.Contains(Visibilities, value) {
		return nil
	}
	return fmt.Errorf("must be one of %s", strings.Join(Visibilities, ", "))
}

// Image checks an upload's size and sniffed content type. It returns
// the content type to send with the file.
func Image(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("file is empty")
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", MaxImageBytes>>20)
	}
	contentType := http.DetectContentType(data)
	if !slices.Contains(ImageTypes, contentType) {
		return "", fmt.Errorf("file type %s not allowed; upload JPEG, PNG, GIF, or WebP", contentType)
	}
	return contentType, nil
}

func maxLength(value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("must be at most %d characters", limit)
	}
	return nil
}
