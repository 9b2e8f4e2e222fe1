// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
)

// tokenCodec signs and verifies session tokens. Expiry is enforced at verify
// time from the embedded claims only.
type tokenCodec struct {
	signKey  string
	issuer   string
	duration time.Duration
}

func (c tokenCodec) Issue(userID string, now time.Time) (models.Token, error) {
	token, err := utils.GenerateJWTToken(c.issuer, userID, now, c.duration, c.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// Verify collapses malformed, mis-signed and expired tokens into
// ErrTokenIsExpiredOrInvalid.
func (c tokenCodec) Verify(tokenString string, now time.Time) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, c.signKey, c.issuer, now)
	if err != nil || token.UserID == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	return token, nil
}
