// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"net/http"
	"net/url"

	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/crypto"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/models"
)

// Front end pages the provider callback lands on.
const (
	profilePath         = "/profile"
	completeProfilePath = "/profile/complete"
)

// googleLogin starts the consent flow. The state is kept in a short-lived
// httpOnly cookie and compared on the way back.
func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	if h.identity == nil {
		writeError(w, r, adapter.ErrFederatedLoginDisabled)
		return
	}

	state, err := crypto.GenerateState()
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setStateCookie(w, state)
	http.Redirect(w, r, h.identity.AuthCodeURL(state), http.StatusFound)
}

// googleCallback finishes the consent flow. It always answers with a
// redirect to the front end; failures are reported in the query string.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.identity == nil {
		writeError(w, r, adapter.ErrFederatedLoginDisabled)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	h.clearStateCookie(w)
	query := r.URL.Query()

	if err != nil || stateCookie.Value == "" ||
		subtle.ConstantTimeCompare([]byte(stateCookie.Value), []byte(query.Get("state"))) != 1 {
		log.Warn().Err(ErrInvalidOAuthState).Msg("federated login rejected")
		h.recordAuth(metrics.AuthFederated, metrics.ResultFailure)
		h.redirectAuthError(w, r, "invalid_state")
		return
	}

	if providerErr := query.Get("error"); providerErr != "" {
		log.Info().Str("provider_error", providerErr).Msg("consent was not granted")
		h.recordAuth(metrics.AuthFederated, metrics.ResultFailure)
		h.redirect(w, r, "/", url.Values{"a": {"auth_fail"}})
		return
	}

	code := query.Get("code")
	if code == "" {
		log.Warn().Err(ErrMissingAuthCode).Msg("federated login rejected")
		h.recordAuth(metrics.AuthFederated, metrics.ResultFailure)
		h.redirectAuthError(w, r, "missing_code")
		return
	}

	ctx := r.Context()
	claims, err := h.identity.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Msg("authorization code exchange failed")
		h.recordAuth(metrics.AuthFederated, metrics.ResultFailure)
		h.redirect(w, r, "/", url.Values{"a": {"auth_fail"}})
		return
	}

	session, err := h.services.AuthService.LoginFederated(ctx, claims)
	h.recordAuth(metrics.AuthFederated, authResult(err))
	if err != nil {
		log.Err(err).Msg("federated login failed")
		h.redirectAuthError(w, r, "server_error")
		return
	}

	h.setSessionCookie(w, session.Token)

	target := completeProfilePath
	if session.State == models.AuthStateProfileComplete {
		target = profilePath
	}
	h.redirect(w, r, target, nil)
}

func (h *Handler) redirectAuthError(w http.ResponseWriter, r *http.Request, msg string) {
	h.redirect(w, r, "/", url.Values{"a": {"auth_error"}, "msg": {msg}})
}

// redirect sends the browser to path on the front end origin.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string, query url.Values) {
	target := h.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	http.Redirect(w, r, target, http.StatusFound)
}
