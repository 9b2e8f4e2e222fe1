// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid token, session or hashing
	// settings (for example, a missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidOAuthConfigs indicates an incomplete federated provider
	// registration.
	ErrInvalidOAuthConfigs = errors.New("invalid oauth configuration")
	// ErrInvalidMailConfigs indicates invalid SMTP settings.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidLimiterConfigs indicates invalid attempt limiter settings.
	ErrInvalidLimiterConfigs = errors.New("invalid limiter configuration")
)
