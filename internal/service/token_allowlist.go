// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/models"
)

// tokenAllowlist is the per-user set of logged-in tokens. Mutations are
// staged on a store.UserWrite so that they land in the same write as the
// rest of the operation.
type tokenAllowlist struct {
	userRepository store.UserRepository
	maxSessions    int
}

// add stages token for insertion. Duplicates are ignored by the store.
// CreatedAt is issuedAt at full precision; the token's iat is whole seconds.
func (a tokenAllowlist) add(w *store.UserWrite, token models.Token, issuedAt time.Time) {
	w.AddSession = &models.SessionToken{
		Token:     token.SignedString,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: issuedAt,
	}
	w.MaxSessions = a.maxSessions
}

// remove stages the exact token for removal; a missing token is a no-op.
func (a tokenAllowlist) remove(w *store.UserWrite, token string) {
	w.RemoveSession = token
}

func (a tokenAllowlist) removeAll(w *store.UserWrite) {
	w.RemoveAllSessions = true
}

func (a tokenAllowlist) contains(ctx context.Context, userID, token string, now time.Time) (bool, error) {
	return a.userRepository.HasSessionToken(ctx, userID, token, now)
}
