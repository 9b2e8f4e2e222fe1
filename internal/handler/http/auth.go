// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.services.AuthService.Signup(r.Context(), req)
	h.recordAuth(metrics.AuthSignup, authResult(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	h.writeSession(w, session, app.MsgSignupSuccess, http.StatusCreated)
}

// signin answers every credential failure with the same 401 body.
func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := h.decode(w, r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.services.AuthService.LoginLocal(r.Context(), creds)
	h.recordAuth(metrics.AuthLocal, authResult(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	h.writeSession(w, session, app.MsgSigninSuccess, http.StatusOK)
}

// logout revokes the presented session, if any, and always clears the
// cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, authenticated := utils.GetUserFromContext(ctx)
	token, _ := utils.GetTokenFromContext(ctx)
	if authenticated {
		if err := h.services.AuthService.Logout(ctx, user.UserID, token); err != nil {
			writeError(w, r, err)
			return
		}
		if h.metrics != nil {
			h.metrics.SessionsRevokedTotal.Inc()
		}
	}

	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.AuthResponse{Success: true, Message: app.MsgLogoutSuccess}, http.StatusOK)
}

// forgotPassword answers with the same message whether or not the address
// belongs to an account.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{Success: true, Message: app.MsgResetEmailSent}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetConfirm
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	err := h.services.AuthService.ResetPassword(r.Context(), req)
	h.recordAuth(metrics.AuthReset, authResult(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Msg("password was reset, all sessions revoked")
	utils.WriteJSON(w, models.AuthResponse{Success: true, Message: app.MsgPasswordReset}, http.StatusOK)
}

func (h *Handler) writeSession(w http.ResponseWriter, session models.Session, message string, status int) {
	user := models.NewUserResponse(session.User)
	utils.WriteJSON(w, models.AuthResponse{
		Success: true,
		Message: message,
		User:    &user,
		State:   session.State,
	}, status)
}
