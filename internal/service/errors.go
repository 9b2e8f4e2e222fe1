// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is the only login failure visible outside the
	// service layer. The reasons below wrap it.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNoSuchAccount = fmt.Errorf("%w: no such account", ErrInvalidCredentials)
	ErrNoPasswordSet = fmt.Errorf("%w: account has no password set", ErrInvalidCredentials)
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrForbidden         = errors.New("forbidden")
	ErrProfileIncomplete = errors.New("profile is incomplete")
	ErrTooManyAttempts   = errors.New("too many attempts")
	ErrResetTokenInvalid = errors.New("password reset token is invalid or has expired")

	ErrUsernameSpaceExhausted = errors.New("no free username candidate found")
	ErrSlugSpaceExhausted     = errors.New("no free slug candidate found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
