// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
)

const (
	sessionCookieName = "token"
	stateCookieName   = "oauth_state"

	stateCookieMaxAge = 10 * time.Minute
)

// setSessionCookie hands token to the browser. The cookie lives exactly as
// long as the token itself.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	maxAge := h.tokenDuration
	if !token.ExpiresAt.IsZero() && !token.IssuedAt.IsZero() {
		maxAge = token.ExpiresAt.Sub(token.IssuedAt)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	h.clearCookie(w, sessionCookieName, "/")
}

func (h *Handler) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/google",
		MaxAge:   int(stateCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearStateCookie(w http.ResponseWriter) {
	h.clearCookie(w, stateCookieName, "/api/google")
}

func (h *Handler) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionTokenFromRequest returns the session token of r. The cookie wins
// over the Authorization header.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoSessionToken
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrNoSessionToken
	}
	return token, nil
}
