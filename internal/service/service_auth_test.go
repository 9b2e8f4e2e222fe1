// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/crypto"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/mock"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSignKey = "test-sign-key"

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:       testSignKey,
		TokenIssuer:        "sosumi-blog-test",
		TokenDuration:      24 * time.Hour,
		MaxSessionsPerUser: 10,
		ResetTokenTTL:      time.Hour,
		BaseURL:            "http://blog.test/",
	}
}

type authFixture struct {
	svc    *authService
	repo   *memUserRepository
	mailer *recordingMailer
	clock  *fakeClock
}

func newAuthFixture(t *testing.T, hasher crypto.PasswordHasher, cfg config.App) authFixture {
	t.Helper()

	repo := newMemUserRepository()
	mailer := newRecordingMailer()
	clock := newFakeClock()

	svc := newAuthService(repo, nil, hasher, mailer, cfg, logger.Nop())
	svc.now = clock.Now
	svc.resolver.ids = &seqIDs{prefix: "user"}

	return authFixture{svc: svc, repo: repo, mailer: mailer, clock: clock}
}

func ptr[T any](v T) *T { return &v }

// ── signup and local login ───────────────────────────────────────────────────

func TestAuthService_SignupAndLocalLogin_EndToEnd(t *testing.T) {
	f := newAuthFixture(t, crypto.NewBcryptHasher(bcrypt.MinCost), testAppConfig())
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, models.SignupRequest{Email: " A@x.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", signup.User.Email)
	assert.Equal(t, "a", signup.User.UsernameOrEmpty())
	assert.True(t, signup.User.AgreedToTerms)
	assert.Equal(t, models.RoleUser, signup.User.Role)
	assert.True(t, signup.IsNewUser)
	assert.Equal(t, 1, f.repo.writeCount(), "signup must be a single write")

	_, err = f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)

	session, err := f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.writeCount(), "login must be a single write")

	user, err := f.svc.Authenticate(ctx, session.Token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, signup.User.UserID, user.UserID)

	_, err = f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Signup_UsernameProbesFromEmailLocalPart(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	f.repo.seed(models.User{UserID: "existing", Email: "someone@y.com", Username: ptr("bob")})

	session, err := f.svc.Signup(context.Background(), models.SignupRequest{Email: "bob@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bob1", session.User.UsernameOrEmpty())
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())

	_, err := f.svc.Signup(context.Background(), models.SignupRequest{Email: "a@x.com", Password: "12345"})

	var vErr *validators.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
	assert.Zero(t, f.repo.writeCount())
}

func TestAuthService_LoginLocal_ReasonsCollapseToInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	f.repo.seed(models.User{UserID: "fed", Email: "fed@x.com", Username: ptr("fed")})

	tests := []struct {
		name   string
		creds  models.Credentials
		reason error
	}{
		{name: "no such account", creds: models.Credentials{Email: "ghost@x.com", Password: "secret1"}, reason: ErrNoSuchAccount},
		{name: "federated-only account", creds: models.Credentials{Email: "fed@x.com", Password: "secret1"}, reason: ErrNoPasswordSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.LoginLocal(context.Background(), tt.creds)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
	assert.Zero(t, f.repo.writeCount())
}

// ── sessions ────────────────────────────────────────────────────────────────

func TestAuthService_TwoSessionsAreIndependent(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	first, err := f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	second, err := f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEqual(t, first.Token.SignedString, second.Token.SignedString)

	require.NoError(t, f.svc.Logout(ctx, first.User.UserID, first.Token.SignedString))

	_, err = f.svc.Authenticate(ctx, first.Token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid, "revoked token must be inactive")

	// the signature of the revoked token is still valid
	_, err = f.svc.codec.Verify(first.Token.SignedString, f.clock.Now())
	assert.NoError(t, err)

	user, err := f.svc.Authenticate(ctx, second.Token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, second.User.UserID, user.UserID)
}

func TestAuthService_Logout_UnknownTokenIsNoop(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	session, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, session.User.UserID, "not-a-token"))
	require.NoError(t, f.svc.Logout(ctx, "no-such-user", session.Token.SignedString))
	require.NoError(t, f.svc.Logout(ctx, "", ""))

	_, err = f.svc.Authenticate(ctx, session.Token.SignedString)
	assert.NoError(t, err)
}

func TestAuthService_Authenticate_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	session, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)

	_, err = f.svc.Authenticate(ctx, session.Token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Authenticate_TamperedToken(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	session, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	raw := []byte(session.Token.SignedString)
	i := len(raw) - 5
	if raw[i] == 'A' {
		raw[i] = 'B'
	} else {
		raw[i] = 'A'
	}
	tampered := string(raw)
	for _, token := range []string{tampered, "garbage", ""} {
		_, err = f.svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
	}
}

func TestAuthService_AllowlistIsCapped(t *testing.T) {
	cfg := testAppConfig()
	cfg.MaxSessionsPerUser = 2
	f := newAuthFixture(t, plainHasher{}, cfg)
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	var last models.Session
	for i := 0; i < 3; i++ {
		f.clock.Advance(time.Minute)
		last, err = f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, f.repo.sessionCount(signup.User.UserID))

	_, err = f.svc.Authenticate(ctx, signup.Token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid, "oldest session must be evicted")

	_, err = f.svc.Authenticate(ctx, last.Token.SignedString)
	assert.NoError(t, err)
}

func TestAuthService_SameSecondLoginsKeepNewestSession(t *testing.T) {
	cfg := testAppConfig()
	cfg.MaxSessionsPerUser = 2
	f := newAuthFixture(t, plainHasher{}, cfg)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		f.clock.Advance(150 * time.Millisecond)
		session, err := f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)

		require.NotNil(t, f.repo.lastWrite.AddSession)
		assert.Equal(t, f.clock.Now(), f.repo.lastWrite.AddSession.CreatedAt, "creation time keeps sub-second precision")
		assert.Equal(t, f.clock.Now().Truncate(time.Second), session.Token.IssuedAt)

		_, err = f.svc.Authenticate(ctx, session.Token.SignedString)
		assert.NoError(t, err, "login %d", i+1)
	}
}

// ── federated login ─────────────────────────────────────────────────────────

func TestAuthService_LoginFederated_CreatesUsernamesByProbing(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	first, err := f.svc.LoginFederated(ctx, models.FederatedClaims{Email: "new@x.com", DisplayName: "New User"})
	require.NoError(t, err)
	assert.True(t, first.IsNewUser)
	assert.Equal(t, "newuser", first.User.UsernameOrEmpty())
	assert.False(t, first.User.HasPassword())
	assert.False(t, first.User.AgreedToTerms)
	assert.Equal(t, models.RoleUser, first.User.Role)

	second, err := f.svc.LoginFederated(ctx, models.FederatedClaims{Email: "other@x.com", DisplayName: "New User"})
	require.NoError(t, err)
	assert.Equal(t, "newuser1", second.User.UsernameOrEmpty())
	assert.NotEqual(t, first.User.UserID, second.User.UserID)
}

func TestAuthService_LoginFederated_ProbingSkipsTakenCandidates(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	f.repo.seed(
		models.User{UserID: "u1", Email: "alice@a.com", Username: ptr("alice")},
		models.User{UserID: "u2", Email: "alice@b.com", Username: ptr("alice1")},
		models.User{UserID: "u3", Email: "alice@c.com", Username: ptr("alice2")},
	)

	session, err := f.svc.LoginFederated(context.Background(), models.FederatedClaims{Email: "alice@d.com", DisplayName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice3", session.User.UsernameOrEmpty())
}

func TestAuthService_LoginFederated_UsernameFromEmailWithoutDisplayName(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())

	session, err := f.svc.LoginFederated(context.Background(), models.FederatedClaims{Email: "Jane.Doe@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", session.User.UsernameOrEmpty())
}

func TestAuthService_LoginFederated_IsIdempotentOnEmail(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()
	claims := models.FederatedClaims{Email: "new@x.com", DisplayName: "New User", AvatarURL: "http://img/a.png", AccessToken: "at-1"}

	first, err := f.svc.LoginFederated(ctx, claims)
	require.NoError(t, err)
	second, err := f.svc.LoginFederated(ctx, claims)
	require.NoError(t, err)

	assert.Equal(t, first.User.UserID, second.User.UserID)
	assert.Equal(t, first.User.UsernameOrEmpty(), second.User.UsernameOrEmpty())
	assert.False(t, second.IsNewUser)
	assert.Len(t, f.repo.users, 1)
	assert.Nil(t, f.repo.lastWrite.Update, "unchanged claims must not rewrite the user row")
	assert.NotNil(t, f.repo.lastWrite.AddSession)
	assert.Equal(t, 2, f.repo.writeCount())
}

func TestAuthService_LoginFederated_ReconcilesChangedClaimsOnly(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	f.repo.seed(models.User{
		UserID:              "u1",
		Email:               "sam@x.com",
		Username:            ptr("keepme"),
		Name:                "Old Name",
		FirstName:           "Sam",
		LastName:            "Stone",
		Country:             "NL",
		AgreedToTerms:       true,
		ProviderAccessToken: ptr("old-token"),
	})

	session, err := f.svc.LoginFederated(context.Background(), models.FederatedClaims{
		Email:       "SAM@x.com",
		DisplayName: "New Name",
		AvatarURL:   "http://img/sam.png",
		AccessToken: "new-token",
	})
	require.NoError(t, err)

	stored := f.repo.users["u1"]
	assert.Equal(t, "keepme", stored.UsernameOrEmpty())
	assert.Equal(t, "New Name", stored.Name)
	assert.Equal(t, "Sam", stored.FirstName, "empty claim must not clear stored value")
	assert.Equal(t, "http://img/sam.png", stored.ProfilePictureURL)
	require.NotNil(t, stored.ProviderAccessToken)
	assert.Equal(t, "new-token", *stored.ProviderAccessToken)
	assert.Equal(t, int64(2), stored.Version)

	assert.Equal(t, models.AuthStateProfileComplete, session.State)
	assert.Equal(t, 1, f.repo.writeCount(), "reconciliation and session must be one write")
}

func TestAuthService_LoginFederated_NewUserIsProfileIncomplete(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())

	session, err := f.svc.LoginFederated(context.Background(), models.FederatedClaims{
		Email: "new@x.com", DisplayName: "New User", GivenName: "New", FamilyName: "User",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AuthStateProfileIncomplete, session.State)
	assert.Equal(t, "New", session.User.FirstName)
	assert.Equal(t, "User", session.User.LastName)
}

func TestAuthService_LoginFederated_RetriesOnceOnVersionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := newAuthService(repo, nil, plainHasher{}, newRecordingMailer(), testAppConfig(), logger.Nop())
	svc.now = newFakeClock().Now

	stale := models.User{UserID: "u1", Email: "r@x.com", Username: ptr("r"), Name: "Old", Version: 3}
	fresh := stale
	fresh.Version = 4

	gomock.InOrder(
		repo.EXPECT().FindUserByEmail(gomock.Any(), "r@x.com").Return(stale, nil),
		repo.EXPECT().ApplyUserWrite(gomock.Any(), gomock.Any()).Return(int64(0), store.ErrVersionConflict),
		repo.EXPECT().FindUserByEmail(gomock.Any(), "r@x.com").Return(fresh, nil),
		repo.EXPECT().ApplyUserWrite(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, w store.UserWrite) (int64, error) {
				require.NotNil(t, w.Update)
				assert.Equal(t, int64(4), w.Update.Version)
				assert.Equal(t, "New", w.Update.Name)
				assert.NotNil(t, w.AddSession)
				return 5, nil
			},
		),
	)

	session, err := svc.LoginFederated(context.Background(), models.FederatedClaims{Email: "r@x.com", DisplayName: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), session.User.Version)
}

func TestAuthService_LoginFederated_UsernameRaceSurfacesAsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := newAuthService(repo, nil, plainHasher{}, newRecordingMailer(), testAppConfig(), logger.Nop())

	repo.EXPECT().FindUserByEmail(gomock.Any(), "n@x.com").Return(models.User{}, store.ErrNoUserWasFound)
	repo.EXPECT().FindUserByUsername(gomock.Any(), "n").Return(models.User{}, store.ErrNoUserWasFound)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.LoginFederated(context.Background(), models.FederatedClaims{Email: "n@x.com", DisplayName: "N"})
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestAuthService_LoginFederated_MissingEmail(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())

	_, err := f.svc.LoginFederated(context.Background(), models.FederatedClaims{DisplayName: "Nobody"})
	assert.ErrorIs(t, err, validators.ErrValidation)
}

// ── attempt limiter ─────────────────────────────────────────────────────────

func TestAuthService_LoginLocal_Throttled(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockAttemptLimiter(ctrl)

	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	f.svc.limiter = limiter

	limiter.EXPECT().Allow(gomock.Any(), "login:a@x.com").Return(false, nil)

	_, err := f.svc.LoginLocal(context.Background(), models.Credentials{Email: "A@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestAuthService_LoginLocal_SuccessResetsAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockAttemptLimiter(ctrl)

	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	_, err := f.svc.Signup(context.Background(), models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	f.svc.limiter = limiter

	gomock.InOrder(
		limiter.EXPECT().Allow(gomock.Any(), "login:a@x.com").Return(true, nil),
		limiter.EXPECT().Reset(gomock.Any(), "login:a@x.com").Return(nil),
	)

	_, err = f.svc.LoginLocal(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestAuthService_LoginLocal_LimiterFailureLetsAttemptThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockAttemptLimiter(ctrl)

	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	f.svc.limiter = limiter

	limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

	_, err := f.svc.LoginLocal(context.Background(), models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrNoSuchAccount)
}

// ── password reset ──────────────────────────────────────────────────────────

func resetTokenFrom(t *testing.T, resetURL string) string {
	t.Helper()
	const prefix = "http://blog.test/reset-password?token="
	require.True(t, strings.HasPrefix(resetURL, prefix), "unexpected reset url %q", resetURL)
	return strings.TrimPrefix(resetURL, prefix)
}

func TestAuthService_PasswordReset_EndToEnd(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, models.PasswordResetRequest{Email: "a@x.com"}))
	token := resetTokenFrom(t, f.mailer.sent["a@x.com"])
	assert.Len(t, token, 40)

	stored := f.repo.users[signup.User.UserID]
	require.NotNil(t, stored.ResetPasswordToken)
	assert.Equal(t, utils.HashString(token, testSignKey), *stored.ResetPasswordToken, "only the digest is stored")
	require.NotNil(t, stored.ResetPasswordExpires)
	assert.Equal(t, f.clock.Now().Add(time.Hour), *stored.ResetPasswordExpires)

	require.NoError(t, f.svc.ResetPassword(ctx, models.PasswordResetConfirm{Token: token, NewPassword: "newsecret"}))

	stored = f.repo.users[signup.User.UserID]
	assert.Nil(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpires)

	_, err = f.svc.Authenticate(ctx, signup.Token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid, "reset must revoke every session")

	_, err = f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.LoginLocal(ctx, models.Credentials{Email: "a@x.com", Password: "newsecret"})
	assert.NoError(t, err)

	err = f.svc.ResetPassword(ctx, models.PasswordResetConfirm{Token: token, NewPassword: "another1"})
	assert.ErrorIs(t, err, ErrResetTokenInvalid, "reset token is single-use")
}

func TestAuthService_ForgotPassword_UnknownEmailLooksLikeSuccess(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())

	err := f.svc.ForgotPassword(context.Background(), models.PasswordResetRequest{Email: "ghost@x.com"})
	require.NoError(t, err)
	assert.Empty(t, f.mailer.sent)
	assert.Zero(t, f.repo.writeCount())
}

func TestAuthService_ForgotPassword_MailFailureIsNotSurfaced(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	f.mailer.err = errors.New("smtp unavailable")

	assert.NoError(t, f.svc.ForgotPassword(ctx, models.PasswordResetRequest{Email: "a@x.com"}))
}

func TestAuthService_ForgotPassword_StoreFailureLooksLikeSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	mailer := newRecordingMailer()

	svc := newAuthService(repo, nil, plainHasher{}, mailer, testAppConfig(), logger.Nop())
	svc.now = newFakeClock().Now

	gomock.InOrder(
		repo.EXPECT().FindUserByEmail(gomock.Any(), "a@x.com").Return(models.User{UserID: "u1", Email: "a@x.com", Version: 1}, nil),
		repo.EXPECT().ApplyUserWrite(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db is down")),
	)

	assert.NoError(t, svc.ForgotPassword(context.Background(), models.PasswordResetRequest{Email: "a@x.com"}))
	assert.Empty(t, mailer.sent, "no link is mailed for a token that was never stored")
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, f.svc.ForgotPassword(ctx, models.PasswordResetRequest{Email: "a@x.com"}))
	token := resetTokenFrom(t, f.mailer.sent["a@x.com"])

	f.clock.Advance(time.Hour)

	err = f.svc.ResetPassword(ctx, models.PasswordResetConfirm{Token: token, NewPassword: "newsecret"})
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestAuthService_ResetPassword_MissingFields(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())

	tests := []struct {
		name  string
		req   models.PasswordResetConfirm
		field string
	}{
		{name: "missing token", req: models.PasswordResetConfirm{NewPassword: "secret1"}, field: "token"},
		{name: "missing password", req: models.PasswordResetConfirm{Token: "abc"}, field: "new_password"},
		{name: "short password", req: models.PasswordResetConfirm{Token: "abc", NewPassword: "123"}, field: "new_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.ResetPassword(context.Background(), tt.req)

			var vErr *validators.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestAuthService_ResetPassword_UnknownToken(t *testing.T) {
	f := newAuthFixture(t, plainHasher{}, testAppConfig())

	err := f.svc.ResetPassword(context.Background(), models.PasswordResetConfirm{Token: "deadbeef", NewPassword: "secret1"})
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}
