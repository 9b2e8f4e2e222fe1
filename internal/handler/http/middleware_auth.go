// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
)

// auth admits only requests with an active session: the token must verify
// and still be allowlisted. The user and the raw token are stored in the
// request context via [utils.WithSession].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := sessionTokenFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, token)
		if err != nil {
			// a stale cookie is useless to the browser, drop it
			if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				h.clearSessionCookie(w)
			}
			writeError(w, r, err)
			return
		}

		ctx = utils.WithSession(ctx, user, token)
		ctx = logger.WithUserID(ctx, user.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth attaches the session when one is presented and valid, and
// lets the request through anonymously otherwise.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := sessionTokenFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, token)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("ignoring invalid session on public route")
			next.ServeHTTP(w, r)
			return
		}

		ctx = utils.WithSession(ctx, user, token)
		ctx = logger.WithUserID(ctx, user.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireCompleteProfile rejects authenticated users whose profile does not
// pass the completeness gate. It must run after auth.
func (h *Handler) requireCompleteProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrNoSessionToken)
			return
		}
		if !user.IsProfileComplete() {
			writeError(w, r, service.ErrProfileIncomplete)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin rejects every caller without the admin role. It must run
// after auth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrNoSessionToken)
			return
		}
		if !user.IsAdmin() {
			writeError(w, r, service.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
