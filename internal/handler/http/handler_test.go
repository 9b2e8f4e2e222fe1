// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/internal/mock"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "session-token"

var testIssuedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenDuration: 24 * time.Hour,
			BaseURL:       "http://blog.test/",
			Production:    true,
		},
		Server: config.Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 5 * time.Second,
		},
	}
}

type fixture struct {
	auth          *mock.MockAuthService
	profile       *mock.MockProfileService
	posts         *mock.MockPostService
	engagement    *mock.MockEngagementService
	subscriptions *mock.MockSubscriptionService
	appInfo       *mock.MockAppInfoService
	identity      *mock.MockIdentityProvider

	metrics *metrics.Metrics
	handler *Handler
	router  http.Handler
}

// newFixture builds a router over service mocks. Federated login is
// enabled only when withIdentity is set.
func newFixture(t *testing.T, withIdentity bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		auth:          mock.NewMockAuthService(ctrl),
		profile:       mock.NewMockProfileService(ctrl),
		posts:         mock.NewMockPostService(ctrl),
		engagement:    mock.NewMockEngagementService(ctrl),
		subscriptions: mock.NewMockSubscriptionService(ctrl),
		appInfo:       mock.NewMockAppInfoService(ctrl),
		metrics:       metrics.NewMetrics(),
	}

	services := &service.Services{
		AuthService:         f.auth,
		ProfileService:      f.profile,
		PostService:         f.posts,
		EngagementService:   f.engagement,
		SubscriptionService: f.subscriptions,
		AppInfoService:      f.appInfo,
	}

	if withIdentity {
		f.identity = mock.NewMockIdentityProvider(ctrl)
		f.handler = NewHandler(services, f.identity, f.metrics, testConfig(), logger.Nop())
	} else {
		f.handler = NewHandler(services, nil, f.metrics, testConfig(), logger.Nop())
	}
	f.router = f.handler.Init()

	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

// signedIn makes the auth middleware accept testToken as user.
func (f *fixture) signedIn(user models.User) {
	f.auth.EXPECT().Authenticate(gomock.Any(), testToken).Return(user, nil)
}

func jsonRequest(method, target string, body any) *http.Request {
	var reader io.Reader = http.NoBody
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, _ := json.Marshal(b)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testToken})
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func completeUser() models.User {
	username := "ada"
	return models.User{
		UserID:        "user-1",
		Email:         "ada@example.com",
		Username:      &username,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Country:       "UK",
		AgreedToTerms: true,
		Role:          models.RoleUser,
	}
}

func incompleteUser() models.User {
	return models.User{UserID: "user-2", Email: "new@example.com", Role: models.RoleUser}
}

func adminUser() models.User {
	u := completeUser()
	u.UserID = "admin-1"
	u.Role = models.RoleAdmin
	return u
}

func testSession(user models.User) models.Session {
	return models.Session{
		Token: models.Token{
			SignedString: testToken,
			UserID:       user.UserID,
			IssuedAt:     testIssuedAt,
			ExpiresAt:    testIssuedAt.Add(24 * time.Hour),
		},
		User:  user,
		State: models.PostLoginState(user),
	}
}

func TestNewHandler(t *testing.T) {
	cfg := testConfig()
	h := NewHandler(&service.Services{}, nil, nil, cfg, logger.Nop())

	require.NotNil(t, h)
	assert.Nil(t, h.identity)
	assert.Equal(t, "http://blog.test", h.baseURL, "trailing slash is trimmed")
	assert.Equal(t, 24*time.Hour, h.tokenDuration)
	assert.True(t, h.secureCookies)
	assert.NotNil(t, h.validator)
}

func TestRouter_UnknownRoutesAnswer404(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
	}{
		{name: "unknown path", method: http.MethodGet, target: "/api/nope"},
		{name: "known path, wrong method", method: http.MethodPatch, target: "/api/auth/signin"},
		{name: "known path, GET on POST only route", method: http.MethodGet, target: "/api/auth/signup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			rr := f.do(httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, http.StatusNotFound, rr.Code)
			body := decodeBody[models.ErrorResponse](t, rr)
			assert.False(t, body.Success)
			assert.Equal(t, app.MsgNotFound, body.Message)
		})
	}
}

func TestGetServerVersion(t *testing.T) {
	f := newFixture(t, false)
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestMetricsEndpoint_ExposesRequestCounters(t *testing.T) {
	f := newFixture(t, false)
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	f.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))
	rr := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sosumi_http_requests_total")
	assert.Contains(t, rr.Body.String(), `route="/api/version"`)
}

func TestRouter_CompressesWhenAccepted(t *testing.T) {
	f := newFixture(t, false)
	f.posts.EXPECT().ListPublished(gomock.Any(), gomock.Any()).Return([]models.Post{{Title: strings.Repeat("long title ", 50)}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := f.do(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}
