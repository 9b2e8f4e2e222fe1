// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Token is a signed session token together with the claims the server cares
// about after verification.
type Token struct {
	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// ID is the unique "jti" claim; two tokens issued for the same user in
	// the same second still differ.
	ID string `json:"-"`

	// UserID is the owner identifier taken from the "sub" claim.
	UserID string `json:"-"`

	// IssuedAt and ExpiresAt mirror the "iat" and "exp" claims.
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// SessionToken is one allowlist entry: a token string the user is still
// logged in with, plus its own expiry so stale entries can be pruned.
type SessionToken struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Expired reports whether the entry is past its expiry at now.
func (s SessionToken) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
