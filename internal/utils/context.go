// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the blog
// server: typed context keys, session token signing and parsing, HTTP JSON
// responses, keyed digests and UUID generation.
package utils

import (
	"context"

	"github.com/MKhiriev/sosumi-blog/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey stores the authenticated user's id (string).
	UserIDCtxKey = contextKey("userID")

	// UserCtxKey stores the authenticated models.User.
	UserCtxKey = contextKey("user")

	// TokenCtxKey stores the raw session token the request was
	// authenticated with. Logout needs it to revoke exactly that session.
	TokenCtxKey = contextKey("token")
)

// GetUserIDFromContext retrieves the user identifier from the context.
// ok is false when the value is missing, empty or of an unexpected type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// WithSession returns ctx carrying the authenticated user and the token
// the request presented.
func WithSession(ctx context.Context, user models.User, token string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, user.UserID)
	ctx = context.WithValue(ctx, UserCtxKey, user)
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetUserFromContext retrieves the authenticated user stored by WithSession.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// GetTokenFromContext retrieves the raw session token stored by WithSession.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok && token != ""
}
