// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/models"
)

// usernameProbeLimit bounds the sequential probing of username candidates.
const usernameProbeLimit = 10000

type idGenerator interface {
	Generate() string
}

// identityResolver maps federated claims to a local user. Probing for a free
// username is not atomic across processes: two concurrent first logins can
// pick the same candidate, and the loser fails on the unique index with
// store.ErrUsernameAlreadyExists.
type identityResolver struct {
	userRepository store.UserRepository
	ids            idGenerator
}

// usernameBase derives the username candidate: the display name with all
// whitespace removed and lower-cased, or the e-mail local part when the
// display name is blank.
func usernameBase(displayName, email string) string {
	base := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, displayName))
	if base != "" {
		return base
	}

	local, _, _ := strings.Cut(models.NormalizeEmail(email), "@")
	if local == "" {
		return "user"
	}
	return local
}

// freeUsername probes base, base1, base2, ... and returns the first candidate
// no user holds.
func (r identityResolver) freeUsername(ctx context.Context, base string) (string, error) {
	for i := 0; i < usernameProbeLimit; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}

		_, err := r.userRepository.FindUserByUsername(ctx, candidate)
		if errors.Is(err, store.ErrNoUserWasFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("username probe failed: %w", err)
		}
	}

	return "", fmt.Errorf("%w: base %q", ErrUsernameSpaceExhausted, base)
}

// newFederatedUser builds, without persisting, the account for a first
// federated login.
func (r identityResolver) newFederatedUser(ctx context.Context, claims models.FederatedClaims, now time.Time) (models.User, error) {
	username, err := r.freeUsername(ctx, usernameBase(claims.DisplayName, claims.Email))
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		UserID:            r.ids.Generate(),
		Email:             models.NormalizeEmail(claims.Email),
		Username:          &username,
		Name:              claims.DisplayName,
		FirstName:         claims.GivenName,
		LastName:          claims.FamilyName,
		ProfilePictureURL: claims.AvatarURL,
		Interests:         models.StringList{},
		Role:              models.RoleUser,
		RegisteredAt:      now,
	}
	if claims.AccessToken != "" {
		accessToken := claims.AccessToken
		user.ProviderAccessToken = &accessToken
	}

	return user, nil
}

// reconcile copies changed claims onto user and reports whether anything
// changed. Empty claims never clear stored values and the username is left
// alone.
func reconcile(user *models.User, claims models.FederatedClaims) bool {
	changed := false
	set := func(dst *string, claim string) {
		if claim != "" && claim != *dst {
			*dst = claim
			changed = true
		}
	}

	set(&user.Name, claims.DisplayName)
	set(&user.FirstName, claims.GivenName)
	set(&user.LastName, claims.FamilyName)
	set(&user.ProfilePictureURL, claims.AvatarURL)

	if claims.AccessToken != "" && (user.ProviderAccessToken == nil || *user.ProviderAccessToken != claims.AccessToken) {
		accessToken := claims.AccessToken
		user.ProviderAccessToken = &accessToken
		changed = true
	}

	return changed
}
