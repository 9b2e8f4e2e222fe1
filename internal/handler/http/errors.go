// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrNoSessionToken is returned by the auth middleware when the request
	// carries neither a session cookie nor a bearer token.
	ErrNoSessionToken = errors.New("no session token in request")

	// ErrInvalidRequestBody is returned when the body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidOAuthState is returned when the state echoed by the identity
	// provider does not match the one stored in the state cookie.
	ErrInvalidOAuthState = errors.New("oauth state mismatch")

	// ErrMissingAuthCode is returned when the provider callback carries no
	// authorization code.
	ErrMissingAuthCode = errors.New("missing authorization code")

	// ErrMissingImage is returned when a profile image upload has no file part.
	ErrMissingImage = errors.New("missing profile image")
)
