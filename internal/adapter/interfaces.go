// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound collaborators of the blog server: the
// federated identity provider, the password reset mailer and the object
// store for uploaded images.
//
// Each collaborator is consumed through a narrow interface so that the
// service layer never depends on a vendor SDK. The concrete implementations
// wrap golang.org/x/oauth2 with go-oidc, wneessen/go-mail and the AWS S3
// SDK respectively.
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/sosumi-blog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityProvider performs the external consent flow and returns the
// verified identity claims.
type IdentityProvider interface {
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for verified claims.
	Exchange(ctx context.Context, code string) (models.FederatedClaims, error)
}

// Mailer delivers transactional e-mail.
type Mailer interface {
	// SendPasswordReset sends resetURL to email.
	SendPasswordReset(ctx context.Context, email, resetURL string) error
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	PutImage(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
