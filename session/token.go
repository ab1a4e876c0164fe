// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zeebo/blake3"

	"github.com/mohamed20o03/web/lib/clock"
)

// Fingerprint returns a short stable digest of a bearer token for log
// correlation. Tokens themselves are never logged.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("session: token has no expiry")

// ExpiresAt reads the exp claim of a JWT bearer token without verifying
// its signature. The client cannot verify backend tokens; the value is
// only used to tell the user when they will need to log in again.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("session: parsing token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token's exp claim is at or before now. A
// token without a readable expiry is not considered expired; the
// backend decides with a 401.
func Expired(token string, c clock.Clock) bool {
	expiry, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	return !c.Now().Before(expiry)
}
