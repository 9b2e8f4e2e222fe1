// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/crypto"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
	"github.com/MKhiriev/sosumi-blog/models"
)

// Attempt limiter key prefixes.
const (
	loginAttemptPrefix  = "login:"
	forgotAttemptPrefix = "forgot:"
)

// authService is the concrete implementation of AuthService.
// Every operation that changes the user aggregate does so with exactly one
// UserRepository write.
type authService struct {
	// userRepository is the data-access layer for users and their allowlist.
	userRepository store.UserRepository

	// limiter throttles login and forgot-password attempts per e-mail.
	limiter store.AttemptLimiter

	hasher crypto.PasswordHasher
	mailer adapter.Mailer

	codec       tokenCodec
	allowlist   tokenAllowlist
	credentials credentialValidator
	resolver    identityResolver

	// resetKey is the HMAC secret used to digest reset tokens before storage.
	resetKey      string
	resetTokenTTL time.Duration

	// baseURL is the public origin reset links point at.
	baseURL string

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService. limiter may be nil, in which
// case attempts are not throttled.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	limiter store.AttemptLimiter,
	hasher crypto.PasswordHasher,
	mailer adapter.Mailer,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return newAuthService(userRepository, limiter, hasher, mailer, cfg, logger)
}

func newAuthService(
	userRepository store.UserRepository,
	limiter store.AttemptLimiter,
	hasher crypto.PasswordHasher,
	mailer adapter.Mailer,
	cfg config.App,
	logger *logger.Logger,
) *authService {
	return &authService{
		userRepository: userRepository,
		limiter:        limiter,
		hasher:         hasher,
		mailer:         mailer,
		codec: tokenCodec{
			signKey:  cfg.TokenSignKey,
			issuer:   cfg.TokenIssuer,
			duration: cfg.TokenDuration,
		},
		allowlist: tokenAllowlist{
			userRepository: userRepository,
			maxSessions:    cfg.MaxSessionsPerUser,
		},
		credentials: credentialValidator{
			userRepository: userRepository,
			hasher:         hasher,
		},
		resolver: identityResolver{
			userRepository: userRepository,
			ids:            utils.NewUUIDGenerator(),
		},
		resetKey:      cfg.TokenSignKey,
		resetTokenTTL: cfg.ResetTokenTTL,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		now:           time.Now,
		logger:        logger,
	}
}

// Signup creates a local account with the first session in one write.
//
// The e-mail is normalized and the username is derived from its local part
// with the same sequential probing federated accounts use. A taken e-mail
// yields store.ErrEmailAlreadyExists.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(req.Email)
	if email == "" {
		return models.Session{}, validators.NewValidationError("email", "email is required")
	}
	if len(req.Password) < models.MinPasswordLength {
		return models.Session{}, validators.NewValidationError("password",
			"password must be at least %d characters long", models.MinPasswordLength)
	}

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		return models.Session{}, store.ErrEmailAlreadyExists
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Msg("user search by email failed")
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := a.hasher.Hash(ctx, req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Session{}, fmt.Errorf("password hashing failed: %w", err)
	}

	username, err := a.resolver.freeUsername(ctx, usernameBase("", email))
	if err != nil {
		log.Err(err).Msg("username generation failed")
		return models.Session{}, err
	}

	now := a.now()
	user := models.User{
		UserID:        a.resolver.ids.Generate(),
		Email:         email,
		Username:      &username,
		PasswordHash:  &hash,
		AgreedToTerms: true,
		Interests:     models.StringList{},
		Role:          models.RoleUser,
		RegisteredAt:  now,
	}

	token, err := a.codec.Issue(user.UserID, now)
	if err != nil {
		log.Err(err).Msg("token creation failed")
		return models.Session{}, err
	}

	var w store.UserWrite
	a.allowlist.add(&w, token, now)

	created, err := a.userRepository.CreateUser(ctx, user, w.AddSession)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", created.UserID).Msg("user signed up")
	return newSession(token, created, true), nil
}

// LoginLocal authenticates email and password and issues a session.
//
// Every rejection matches ErrInvalidCredentials; the specific reason is only
// logged. Too many attempts for the same e-mail yield ErrTooManyAttempts.
func (a *authService) LoginLocal(ctx context.Context, creds models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(creds.Email)
	if err := a.checkAttempt(ctx, loginAttemptPrefix+email); err != nil {
		return models.Session{}, err
	}

	user, err := a.credentials.validate(ctx, email, creds.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Info().Str("reason", err.Error()).Msg("local login rejected")
		} else {
			log.Err(err).Msg("credential validation failed")
		}
		return models.Session{}, err
	}

	session, err := a.IssueSession(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	if a.limiter != nil {
		if err = a.limiter.Reset(ctx, loginAttemptPrefix+email); err != nil {
			log.Warn().Err(err).Msg("failed to reset login attempts")
		}
	}

	return session, nil
}

// LoginFederated resolves claims to a local user and issues a session.
//
// A brand-new user is inserted together with its first session. An existing
// user gets the reconciled profile fields and the new allowlist entry in one
// versioned write. A lost race against a concurrent writer is retried once.
func (a *authService) LoginFederated(ctx context.Context, claims models.FederatedClaims) (models.Session, error) {
	log := logger.FromContext(ctx)

	if models.NormalizeEmail(claims.Email) == "" {
		return models.Session{}, validators.NewValidationError("email", "email is required")
	}

	session, err := a.loginFederated(ctx, claims)
	if errors.Is(err, store.ErrVersionConflict) || errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Warn().Err(err).Msg("federated login lost a race, retrying")
		session, err = a.loginFederated(ctx, claims)
	}
	if err != nil {
		log.Err(err).Msg("federated login failed")
		return models.Session{}, err
	}

	return session, nil
}

func (a *authService) loginFederated(ctx context.Context, claims models.FederatedClaims) (models.Session, error) {
	now := a.now()

	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(claims.Email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		return a.createFederatedUser(ctx, claims, now)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	token, err := a.codec.Issue(user.UserID, now)
	if err != nil {
		return models.Session{}, err
	}

	w := store.UserWrite{UserID: user.UserID, Now: now}
	if reconcile(&user, claims) {
		w.Update = &user
	}
	a.allowlist.add(&w, token, now)

	version, err := a.userRepository.ApplyUserWrite(ctx, w)
	if err != nil {
		return models.Session{}, fmt.Errorf("federated login write failed: %w", err)
	}
	user.Version = version

	return newSession(token, user, false), nil
}

func (a *authService) createFederatedUser(ctx context.Context, claims models.FederatedClaims, now time.Time) (models.Session, error) {
	user, err := a.resolver.newFederatedUser(ctx, claims, now)
	if err != nil {
		return models.Session{}, err
	}

	token, err := a.codec.Issue(user.UserID, now)
	if err != nil {
		return models.Session{}, err
	}

	var w store.UserWrite
	a.allowlist.add(&w, token, now)

	created, err := a.userRepository.CreateUser(ctx, user, w.AddSession)
	if err != nil {
		return models.Session{}, fmt.Errorf("federated user creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("user_id", created.UserID).
		Str("username", created.UsernameOrEmpty()).
		Msg("federated user created")
	return newSession(token, created, true), nil
}

// IssueSession signs a token for user and allowlists it in one write.
func (a *authService) IssueSession(ctx context.Context, user models.User) (models.Session, error) {
	log := logger.FromContext(ctx)
	now := a.now()

	token, err := a.codec.Issue(user.UserID, now)
	if err != nil {
		log.Err(err).Msg("token creation failed")
		return models.Session{}, err
	}

	w := store.UserWrite{UserID: user.UserID, Now: now}
	a.allowlist.add(&w, token, now)

	version, err := a.userRepository.ApplyUserWrite(ctx, w)
	if err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("session allowlisting failed")
		return models.Session{}, fmt.Errorf("session allowlisting failed: %w", err)
	}
	user.Version = version

	return newSession(token, user, false), nil
}

// Logout removes token from the allowlist of userID. Removing a token that
// is not allowlisted, or logging out a user that no longer exists, is a
// no-op.
func (a *authService) Logout(ctx context.Context, userID, token string) error {
	if userID == "" || token == "" {
		return nil
	}

	w := store.UserWrite{UserID: userID, Now: a.now()}
	a.allowlist.remove(&w, token)

	if _, err := a.userRepository.ApplyUserWrite(ctx, w); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return nil
		}
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("logout failed")
		return fmt.Errorf("logout failed: %w", err)
	}

	return nil
}

// Authenticate returns the owner of an active session. Bad signature,
// expiry, revocation and a vanished owner all yield
// ErrTokenIsExpiredOrInvalid.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	now := a.now()

	token, err := a.codec.Verify(tokenString, now)
	if err != nil {
		return models.User{}, err
	}

	active, err := a.allowlist.contains(ctx, token.UserID, tokenString, now)
	if err != nil {
		return models.User{}, fmt.Errorf("allowlist lookup failed: %w", err)
	}
	if !active {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrTokenIsExpiredOrInvalid
		}
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// ForgotPassword stores a fresh reset token for the account owning the
// e-mail and mails the reset link. An unknown e-mail looks like success to
// the caller, and so does a failed token write or delivery.
func (a *authService) ForgotPassword(ctx context.Context, req models.PasswordResetRequest) error {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(req.Email)
	if email == "" {
		return validators.NewValidationError("email", "email is required")
	}
	if err := a.checkAttempt(ctx, forgotAttemptPrefix+email); err != nil {
		return err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Msg("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	resetToken, err := crypto.GenerateResetToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return fmt.Errorf("reset token generation failed: %w", err)
	}

	now := a.now()
	digest := utils.HashString(resetToken, a.resetKey)
	expires := now.Add(a.resetTokenTTL)
	user.ResetPasswordToken = &digest
	user.ResetPasswordExpires = &expires

	// failures past this point answer like an unknown email does
	if _, err = a.userRepository.ApplyUserWrite(ctx, store.UserWrite{UserID: user.UserID, Update: &user, Now: now}); err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("storing reset token failed")
		return nil
	}

	resetURL := a.baseURL + "/reset-password?token=" + resetToken
	if err = a.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("sending reset mail failed")
	}

	return nil
}

// ResetPassword replaces the password of the account holding the reset
// token. The reset token and its expiry are cleared together and every
// session of the user is revoked in the same write.
func (a *authService) ResetPassword(ctx context.Context, req models.PasswordResetConfirm) error {
	log := logger.FromContext(ctx)

	if req.Token == "" {
		return validators.NewValidationError("token", "token is required")
	}
	if req.NewPassword == "" {
		return validators.NewValidationError("new_password", "new_password is required")
	}
	if len(req.NewPassword) < models.MinPasswordLength {
		return validators.NewValidationError("new_password",
			"new_password must be at least %d characters long", models.MinPasswordLength)
	}

	user, err := a.userRepository.FindUserByResetToken(ctx, utils.HashString(req.Token, a.resetKey))
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrResetTokenInvalid
	}
	if err != nil {
		log.Err(err).Msg("user search by reset token failed")
		return fmt.Errorf("user search by reset token failed: %w", err)
	}

	now := a.now()
	if user.ResetPasswordExpires == nil || !now.Before(*user.ResetPasswordExpires) {
		return ErrResetTokenInvalid
	}

	hash, err := a.hasher.Hash(ctx, req.NewPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	user.PasswordHash = &hash
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil

	w := store.UserWrite{UserID: user.UserID, Update: &user, Now: now}
	a.allowlist.removeAll(&w)

	if _, err = a.userRepository.ApplyUserWrite(ctx, w); err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("password reset write failed")
		return fmt.Errorf("password reset write failed: %w", err)
	}

	log.Info().Str("user_id", user.UserID).Msg("password was reset")
	return nil
}

// checkAttempt counts one attempt for key. A failing limiter lets the
// attempt through.
func (a *authService) checkAttempt(ctx context.Context, key string) error {
	if a.limiter == nil {
		return nil
	}

	allowed, err := a.limiter.Allow(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("attempt limiter unavailable")
		return nil
	}
	if !allowed {
		return ErrTooManyAttempts
	}
	return nil
}

func newSession(token models.Token, user models.User, isNew bool) models.Session {
	return models.Session{
		Token:     token,
		User:      user,
		State:     models.PostLoginState(user),
		IsNewUser: isNew,
	}
}
