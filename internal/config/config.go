// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// sosumi-blog server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds session, password and token settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and object storage settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// OAuth holds the federated identity provider settings.
	OAuth OAuth `envPrefix:"OAUTH_"`

	// Mail holds the outbound SMTP settings used for password reset mails.
	Mail Mail `envPrefix:"MAIL_"`

	// Limiter holds the Redis-backed attempt limiter settings.
	Limiter Limiter `envPrefix:"LIMITER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the secret used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the validity window of a session token. It is also
	// the Max-Age of the session cookie.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BcryptCost is the adaptive work factor of the password hasher.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// MaxSessionsPerUser caps the allowlist; the oldest entries are evicted.
	// Env: APP_MAX_SESSIONS_PER_USER
	MaxSessionsPerUser int `env:"MAX_SESSIONS_PER_USER"`

	// ResetTokenTTL is how long a password reset link stays valid.
	// Env: APP_RESET_TOKEN_TTL
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL"`

	// BaseURL is the public origin of the web front end. Used to build
	// reset links and post-login redirects.
	// Env: APP_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Production switches the session cookie to Secure.
	// Env: APP_PRODUCTION
	Production bool `env:"PRODUCTION"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
	S3 S3 `envPrefix:"S3_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// S3 holds object storage settings for profile pictures and thumbnails.
// Image upload is disabled when Bucket is empty.
type S3 struct {
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION"`
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`

	// PublicURL is the prefix used to build object URLs returned to clients.
	PublicURL string `env:"PUBLIC_URL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// OAuth holds federated login settings.
type OAuth struct {
	Google Google `envPrefix:"GOOGLE_"`
}

// Google holds the OpenID Connect client registration. Federated login is
// disabled when ClientID is empty.
type Google struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
	IssuerURL    string `env:"ISSUER_URL"`
}

// Mail holds SMTP settings. Mails are only logged when Host is empty.
type Mail struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Limiter holds the attempt limiter settings. The limiter is disabled when
// RedisAddress is empty.
type Limiter struct {
	RedisAddress  string        `env:"REDIS_ADDRESS"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	MaxAttempts   int           `env:"MAX_ATTEMPTS"`
	Window        time.Duration `env:"WINDOW"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. Earlier sources take precedence
// for non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
