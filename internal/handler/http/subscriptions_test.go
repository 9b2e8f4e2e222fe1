// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "subscribed",
			body:       `{"email":"reader@example.com"}`,
			callsSvc:   true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "already subscribed",
			body:       `{"email":"reader@example.com"}`,
			callsSvc:   true,
			serviceErr: store.ErrSubscriptionAlreadyExists,
			wantStatus: http.StatusConflict,
			wantMsg:    app.MsgAlreadySubscribed,
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			if tt.callsSvc {
				f.subscriptions.EXPECT().Subscribe(gomock.Any(), models.SubscribeRequest{Email: "reader@example.com"}).
					Return(models.Subscription{SubscriptionID: "s-1", Email: "reader@example.com"}, tt.serviceErr)
			}

			rr := f.do(jsonRequest(http.MethodPost, "/api/subscriptions", tt.body))

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "s-1", decodeBody[envelope[models.Subscription]](t, rr).Data.SubscriptionID)
				return
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeBody[models.ErrorResponse](t, rr).Message)
			}
		})
	}
}

func TestListSubscriptions(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		f := newFixture(t, false)
		admin := adminUser()
		f.signedIn(admin)
		f.subscriptions.EXPECT().ListSubscriptions(gomock.Any(), admin).Return([]models.Subscription{
			{SubscriptionID: "s-2", Email: "b@example.com"},
			{SubscriptionID: "s-1", Email: "a@example.com"},
		}, nil)

		rr := f.do(withCookie(httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody[envelope[[]models.Subscription]](t, rr).Data, 2)
	})

	t.Run("regular user", func(t *testing.T) {
		f := newFixture(t, false)
		f.signedIn(completeUser())

		rr := f.do(withCookie(httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t, false)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestDeleteSubscription(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantID     string
		serviceErr error
		wantStatus int
	}{
		{name: "id in path", target: "/api/subscriptions/s-1", wantID: "s-1", wantStatus: http.StatusOK},
		{name: "id in query", target: "/api/subscriptions?id=s-1", wantID: "s-1", wantStatus: http.StatusOK},
		{
			name:       "unknown id",
			target:     "/api/subscriptions/s-9",
			wantID:     "s-9",
			serviceErr: store.ErrSubscriptionNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			admin := adminUser()
			f.signedIn(admin)
			f.subscriptions.EXPECT().DeleteSubscription(gomock.Any(), admin, tt.wantID).Return(tt.serviceErr)

			rr := f.do(withCookie(httptest.NewRequest(http.MethodDelete, tt.target, nil)))

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.serviceErr == nil {
				assert.Equal(t, app.MsgSubscriptionGone, decodeBody[models.Response](t, rr).Message)
			}
		})
	}
}
