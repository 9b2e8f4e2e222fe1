// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// sosumi-blog server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is the single message for every failed local
	// login, whatever the underlying reason.
	MsgInvalidCredentials = "invalid email or password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgNotAuthenticated is returned for a missing, expired, tampered or
	// revoked session token.
	MsgNotAuthenticated = "not authenticated"

	// MsgForbidden is returned when the caller lacks the role or ownership
	// required by the operation.
	MsgForbidden = "forbidden"

	// MsgProfileIncomplete is returned by authoring endpoints when the
	// caller has not completed their profile.
	MsgProfileIncomplete = "profile incomplete"

	// MsgEmailAlreadyExists is returned on signup with a registered email.
	MsgEmailAlreadyExists = "an account with this email already exists"

	// MsgUsernameAlreadyExists is returned when a username is already taken.
	MsgUsernameAlreadyExists = "username already taken"

	// MsgAlreadySubscribed is returned for a duplicate subscription.
	MsgAlreadySubscribed = "email already subscribed"

	// MsgNotFound is returned when the requested post, comment or
	// subscription does not exist.
	MsgNotFound = "not found"

	// MsgConflict is returned when a concurrent write won the race.
	MsgConflict = "resource was modified concurrently, retry"

	// MsgTooManyAttempts is returned when the attempt limiter trips.
	MsgTooManyAttempts = "too many attempts, try again later"

	// MsgResetTokenInvalid is returned for an unknown or expired reset token.
	MsgResetTokenInvalid = "password reset token is invalid or has expired"

	// MsgImageStorageDisabled is returned when image upload is requested but
	// no object storage is configured.
	MsgImageStorageDisabled = "image upload is not available"

	// MsgFederatedLoginDisabled is returned when no identity provider is
	// configured.
	MsgFederatedLoginDisabled = "federated login is not available"
)

// Success messages written into auth endpoint responses.
const (
	MsgSignupSuccess     = "account created"
	MsgSigninSuccess     = "signed in"
	MsgLogoutSuccess     = "logged out"
	MsgResetEmailSent    = "if an account with that email exists, a reset link has been sent"
	MsgPasswordReset     = "password has been reset"
	MsgProfileUpdated    = "profile updated"
	MsgBioUpdated        = "bio updated"
	MsgImageUploaded     = "profile image uploaded"
	MsgSubscribed        = "subscribed"
	MsgSubscriptionGone  = "subscription deleted"
	MsgPostDeleted       = "post deleted"
	MsgCommentAdded      = "comment added"
	MsgStatusFetched     = "ok"
)
