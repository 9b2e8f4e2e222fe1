// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthState is the post-authentication routing state.
type AuthState string

const (
	AuthStateAuthenticated     AuthState = "authenticated"
	AuthStateProfileIncomplete AuthState = "profile_incomplete"
	AuthStateProfileComplete   AuthState = "profile_complete"
)

// PostLoginState evaluates the profile completeness gate for a freshly
// authenticated user.
func PostLoginState(u User) AuthState {
	if u.IsProfileComplete() {
		return AuthStateProfileComplete
	}
	return AuthStateProfileIncomplete
}

// Session is the result of a successful signup or login.
type Session struct {
	Token Token
	User  User
	State AuthState

	// IsNewUser is set when the login created the account.
	IsNewUser bool
}

// FederatedClaims is the identity assertion returned by the external
// provider after the consent flow.
type FederatedClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	AvatarURL   string `json:"picture"`

	// AccessToken is the provider's opaque access token.
	AccessToken string `json:"-"`
}

// MinPasswordLength is the shortest accepted local password.
const MinPasswordLength = 6

// Credentials is the body of a signin request.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the body of a local signup request.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
