// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_IssueThenVerify(t *testing.T) {
	codec := tokenCodec{signKey: "k", issuer: "iss", duration: time.Hour}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	token, err := codec.Issue("user-1", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)

	got, err := codec.Verify(token.SignedString, now.Add(59*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, token.ID, got.ID)
}

func TestTokenCodec_ExpiryIsExact(t *testing.T) {
	codec := tokenCodec{signKey: "k", issuer: "iss", duration: time.Hour}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	token, err := codec.Issue("user-1", now)
	require.NoError(t, err)

	_, err = codec.Verify(token.SignedString, now.Add(time.Hour-time.Second))
	assert.NoError(t, err)

	_, err = codec.Verify(token.SignedString, now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenCodec_RejectsForeignTokens(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	codec := tokenCodec{signKey: "k", issuer: "iss", duration: time.Hour}

	otherKey, err := tokenCodec{signKey: "other", issuer: "iss", duration: time.Hour}.Issue("user-1", now)
	require.NoError(t, err)
	otherIssuer, err := tokenCodec{signKey: "k", issuer: "someone-else", duration: time.Hour}.Issue("user-1", now)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong key":    otherKey.SignedString,
		"wrong issuer": otherIssuer.SignedString,
		"malformed":    "a.b.c",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Verify(token, now)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

func TestTokenCodec_IssueFailsWithoutSubject(t *testing.T) {
	codec := tokenCodec{signKey: "k", issuer: "iss", duration: time.Hour}

	_, err := codec.Issue("", time.Now())
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
