// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Role gates administrative operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Gender is the optional self-described gender shown on a profile.
type Gender string

const (
	GenderMale         Gender = "Male"
	GenderFemale       Gender = "Female"
	GenderRatherNotSay Gender = "Rather not say"
)

// Valid reports whether g is one of the predefined options.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderRatherNotSay:
		return true
	}
	return false
}

// User represents an account entity used for authentication, authorization
// and the public author profile.
// Sensitive fields must never be exposed outside trusted boundaries and are
// therefore excluded from JSON.
type User struct {
	// UserID is the unique identifier of the user (UUID v7).
	UserID string `json:"id"`

	// Email is unique, stored trimmed and lower-cased.
	Email string `json:"email"`

	// Username is unique when set. It is generated lazily and never
	// overwritten by federated login reconciliation.
	Username *string `json:"username"`

	// PasswordHash is the bcrypt hash of the local password.
	// Nil for accounts created through federated login only.
	PasswordHash *string `json:"-"`

	// ProviderAccessToken is the last access token seen from the external
	// identity provider. It is never used for session authentication.
	ProviderAccessToken *string `json:"-"`

	Name              string     `json:"name"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Country           string     `json:"country"`
	AgreedToTerms     bool       `json:"agreed_to_terms"`
	Bio               string     `json:"bio"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	Gender            *Gender    `json:"gender"`
	HomepageURL       string     `json:"homepage_url"`
	Company           string     `json:"company"`
	City              string     `json:"city"`
	Interests         StringList `json:"interests"`
	Role              Role       `json:"role"`

	// ResetPasswordToken and ResetPasswordExpires are set and cleared together.
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	// SessionTokens is the per-user allowlist of issued session tokens.
	SessionTokens []SessionToken `json:"-"`

	// Version is the optimistic-locking counter of the users row.
	Version int64 `json:"-"`

	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can authenticate locally.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsProfileComplete is the profile completeness gate: first name, last name
// and country are present and the terms were agreed to.
func (u User) IsProfileComplete() bool {
	return strings.TrimSpace(u.FirstName) != "" &&
		strings.TrimSpace(u.LastName) != "" &&
		strings.TrimSpace(u.Country) != "" &&
		u.AgreedToTerms
}

// UsernameOrEmpty dereferences Username.
func (u User) UsernameOrEmpty() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}

// NormalizeEmail trims and lower-cases an e-mail address the way it is
// stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserResponse is the sanitized user representation returned by the API.
type UserResponse struct {
	User
	ProfileComplete bool `json:"profile_complete"`
}

// NewUserResponse wraps u together with its completeness flag.
func NewUserResponse(u User) UserResponse {
	return UserResponse{User: u, ProfileComplete: u.IsProfileComplete()}
}

// AuthorSummary is the subset of a user embedded into comments and posts.
type AuthorSummary struct {
	UserID            string `json:"id"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url"`
}
