// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/mail"
)

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Optional integrations (OAuth, mail, object storage, limiter) are only
// checked when their enabling field is set.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < minBcryptCost || cfg.App.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost must be in range %d-%d", ErrInvalidAppConfigs, minBcryptCost, maxBcryptCost)
	}

	if cfg.App.MaxSessionsPerUser < 1 {
		return fmt.Errorf("%w: max sessions per user must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.S3.Bucket != "" && cfg.Storage.S3.Region == "" {
		return fmt.Errorf("%w: s3 region is required when bucket is set", ErrInvalidStorageConfigs)
	}

	if g := cfg.OAuth.Google; g.ClientID != "" && (g.ClientSecret == "" || g.RedirectURL == "") {
		return fmt.Errorf("%w: google client secret and redirect url are required", ErrInvalidOAuthConfigs)
	}

	if cfg.Mail.Host != "" {
		if _, err := mail.ParseAddress(cfg.Mail.From); err != nil {
			return fmt.Errorf("%w: sender address: %v", ErrInvalidMailConfigs, err)
		}
	}

	if cfg.Limiter.RedisAddress != "" && (cfg.Limiter.MaxAttempts < 1 || cfg.Limiter.Window <= 0) {
		return fmt.Errorf("%w: attempts and window must be positive", ErrInvalidLimiterConfigs)
	}

	return nil
}
