// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/sosumi-blog/internal/crypto"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/models"
)

type credentialValidator struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
}

// validate returns the account owning email when password matches. The
// rejection is one of ErrNoSuchAccount, ErrNoPasswordSet or ErrWrongPassword.
func (v credentialValidator) validate(ctx context.Context, email, password string) (models.User, error) {
	user, err := v.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrNoSuchAccount
		}
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.HasPassword() {
		return models.User{}, ErrNoPasswordSet
	}

	if !v.hasher.Verify(ctx, password, *user.PasswordHash) {
		return models.User{}, ErrWrongPassword
	}

	return user, nil
}
