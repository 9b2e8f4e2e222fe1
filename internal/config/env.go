// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Variable names come
// from the env and envPrefix tags, e.g. App.TokenSignKey is read from
// APP_TOKEN_SIGN_KEY. Unset variables leave the field zero so that a later
// source or the defaults can fill it.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error reading blog config from environment: %w", err)
	}
	return nil
}
