// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthResponse is the envelope of every auth endpoint.
// It never states which validation step failed for a login.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	User *UserResponse `json:"user,omitempty"`

	// State is the post-login routing state of the profile gate.
	State AuthState `json:"state,omitempty"`
}

// Response is the generic envelope used by content endpoints.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Field names the missing or invalid input for validation errors.
	Field string `json:"field,omitempty"`
}

// PasswordResetRequest is the body of forgot-password.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm is the body of reset-password.
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// SubscribeRequest is the body of a newsletter subscription.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// BioUpdate is the body of the bio update endpoint. A missing key is an
// error; an empty string clears the bio.
type BioUpdate struct {
	Bio Optional[string] `json:"bio"`
}
