// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// codeExchanger is the subset of *oauth2.Config used by GoogleProvider.
type codeExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// tokenVerifier verifies a raw ID token and decodes its claims into v.
type tokenVerifier interface {
	VerifyClaims(ctx context.Context, rawIDToken string, v any) error
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func (o oidcVerifier) VerifyClaims(ctx context.Context, rawIDToken string, v any) error {
	idToken, err := o.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return err
	}
	return idToken.Claims(v)
}

// googleClaims is the subset of the Google ID token the server reads.
type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GoogleProvider is an OpenID Connect [IdentityProvider].
type GoogleProvider struct {
	oauth2Config codeExchanger
	verifier     tokenVerifier
	logger       *logger.Logger
}

// NewGoogleProvider discovers the issuer in cfg and builds a provider.
// It returns ErrFederatedLoginDisabled when no client id is configured.
func NewGoogleProvider(ctx context.Context, cfg config.Google, log *logger.Logger) (*GoogleProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrFederatedLoginDisabled
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		log.Err(err).Str("func", "NewGoogleProvider").Msg("failed to discover OIDC provider")
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return newGoogleProvider(oauth2Config, oidcVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})}, log), nil
}

func newGoogleProvider(exchanger codeExchanger, verifier tokenVerifier, log *logger.Logger) *GoogleProvider {
	return &GoogleProvider{
		oauth2Config: exchanger,
		verifier:     verifier,
		logger:       log,
	}
}

// AuthCodeURL implements [IdentityProvider].
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.oauth2Config.AuthCodeURL(state)
}

// Exchange implements [IdentityProvider]. The ID token signature, audience
// and expiry are verified before any claim is trusted.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (models.FederatedClaims, error) {
	log := logger.FromContext(ctx)

	token, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "GoogleProvider.Exchange").Msg("code exchange failed")
		return models.FederatedClaims{}, fmt.Errorf("%w: %w", ErrExchangingCode, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return models.FederatedClaims{}, ErrMissingIDToken
	}

	var claims googleClaims
	if err = g.verifier.VerifyClaims(ctx, rawIDToken, &claims); err != nil {
		log.Err(err).Str("func", "GoogleProvider.Exchange").Msg("id_token verification failed")
		return models.FederatedClaims{}, fmt.Errorf("%w: %w", ErrVerifyingIDToken, err)
	}

	if claims.Email == "" {
		return models.FederatedClaims{}, ErrMissingEmail
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return models.FederatedClaims{}, ErrEmailNotVerified
	}

	return models.FederatedClaims{
		Email:       claims.Email,
		DisplayName: claims.Name,
		GivenName:   claims.GivenName,
		FamilyName:  claims.FamilyName,
		AvatarURL:   claims.Picture,
		AccessToken: token.AccessToken,
	}, nil
}
