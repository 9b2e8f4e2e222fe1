// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testState = "state-from-cookie"

var testClaims = models.FederatedClaims{
	Email:       "ada@example.com",
	DisplayName: "Ada Lovelace",
	GivenName:   "Ada",
	FamilyName:  "Lovelace",
	AccessToken: "provider-access-token",
}

func callbackRequest(query url.Values, stateCookie string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/google/callback?"+query.Encode(), nil)
	if stateCookie != "" {
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: stateCookie})
	}
	return req
}

func TestGoogle_Disabled(t *testing.T) {
	for _, target := range []string{"/api/google", "/api/google/callback?code=x&state=y"} {
		t.Run(target, func(t *testing.T) {
			f := newFixture(t, false)

			rr := f.do(httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
			assert.Equal(t, app.MsgFederatedLoginDisabled, decodeBody[models.ErrorResponse](t, rr).Message)
		})
	}
}

func TestGoogleLogin_RedirectsWithState(t *testing.T) {
	f := newFixture(t, true)

	var sentState string
	f.identity.EXPECT().AuthCodeURL(gomock.Any()).DoAndReturn(func(state string) string {
		sentState = state
		return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
	})

	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/google", nil))

	require.Equal(t, http.StatusFound, rr.Code)
	require.NotEmpty(t, sentState)
	assert.Equal(t, "https://accounts.example.com/auth?state="+url.QueryEscape(sentState), rr.Header().Get("Location"))

	cookie := findCookie(rr, stateCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, sentState, cookie.Value)
	assert.Equal(t, "/api/google", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)
}

func TestGoogleCallback(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		stateCookie  string
		setup        func(f *fixture)
		wantLocation string
		wantSession  bool
		wantResult   string
	}{
		{
			name:         "no state cookie",
			query:        url.Values{"state": {testState}, "code": {"c"}},
			wantLocation: "http://blog.test/?a=auth_error&msg=invalid_state",
			wantResult:   metrics.ResultFailure,
		},
		{
			name:         "state mismatch",
			query:        url.Values{"state": {"forged"}, "code": {"c"}},
			stateCookie:  testState,
			wantLocation: "http://blog.test/?a=auth_error&msg=invalid_state",
			wantResult:   metrics.ResultFailure,
		},
		{
			name:         "consent denied",
			query:        url.Values{"state": {testState}, "error": {"access_denied"}},
			stateCookie:  testState,
			wantLocation: "http://blog.test/?a=auth_fail",
			wantResult:   metrics.ResultFailure,
		},
		{
			name:         "missing code",
			query:        url.Values{"state": {testState}},
			stateCookie:  testState,
			wantLocation: "http://blog.test/?a=auth_error&msg=missing_code",
			wantResult:   metrics.ResultFailure,
		},
		{
			name:        "exchange fails",
			query:       url.Values{"state": {testState}, "code": {"c"}},
			stateCookie: testState,
			setup: func(f *fixture) {
				f.identity.EXPECT().Exchange(gomock.Any(), "c").Return(models.FederatedClaims{}, errors.New("id token rejected"))
			},
			wantLocation: "http://blog.test/?a=auth_fail",
			wantResult:   metrics.ResultFailure,
		},
		{
			name:        "login fails",
			query:       url.Values{"state": {testState}, "code": {"c"}},
			stateCookie: testState,
			setup: func(f *fixture) {
				f.identity.EXPECT().Exchange(gomock.Any(), "c").Return(testClaims, nil)
				f.auth.EXPECT().LoginFederated(gomock.Any(), testClaims).Return(models.Session{}, service.ErrUsernameSpaceExhausted)
			},
			wantLocation: "http://blog.test/?a=auth_error&msg=server_error",
			wantResult:   metrics.ResultFailure,
		},
		{
			name:        "complete profile lands on the profile page",
			query:       url.Values{"state": {testState}, "code": {"c"}},
			stateCookie: testState,
			setup: func(f *fixture) {
				f.identity.EXPECT().Exchange(gomock.Any(), "c").Return(testClaims, nil)
				f.auth.EXPECT().LoginFederated(gomock.Any(), testClaims).Return(testSession(completeUser()), nil)
			},
			wantLocation: "http://blog.test/profile",
			wantSession:  true,
			wantResult:   metrics.ResultSuccess,
		},
		{
			name:        "incomplete profile lands on the completion page",
			query:       url.Values{"state": {testState}, "code": {"c"}},
			stateCookie: testState,
			setup: func(f *fixture) {
				f.identity.EXPECT().Exchange(gomock.Any(), "c").Return(testClaims, nil)
				f.auth.EXPECT().LoginFederated(gomock.Any(), testClaims).Return(testSession(incompleteUser()), nil)
			},
			wantLocation: "http://blog.test/profile/complete",
			wantSession:  true,
			wantResult:   metrics.ResultSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			if tt.setup != nil {
				tt.setup(f)
			}

			rr := f.do(callbackRequest(tt.query, tt.stateCookie))

			require.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
			assert.Equal(t, 1.0, authAttempts(f, metrics.AuthFederated, tt.wantResult))

			state := findCookie(rr, stateCookieName)
			require.NotNil(t, state, "state cookie is single use")
			assert.Equal(t, -1, state.MaxAge)

			session := findCookie(rr, sessionCookieName)
			if !tt.wantSession {
				assert.Nil(t, session)
				return
			}
			require.NotNil(t, session)
			assert.Equal(t, testToken, session.Value)
			assert.Equal(t, 86400, session.MaxAge)
		})
	}
}
