// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
)

// decode reads the JSON body of r into v and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := utils.DecodeJSON(w, r, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return h.validator.Validate(r.Context(), v)
}

// sessionUser returns the user the auth middleware stored in the context.
// Anonymous callers get the zero user.
func sessionUser(r *http.Request) models.User {
	user, _ := utils.GetUserFromContext(r.Context())
	return user
}

func writeData(w http.ResponseWriter, data any, status int) {
	utils.WriteJSON(w, models.Response{Success: true, Data: data}, status)
}

func writeMessage(w http.ResponseWriter, message string, status int) {
	utils.WriteJSON(w, models.Response{Success: true, Message: message}, status)
}

// authResult labels an auth attempt outcome for metrics.
func authResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, service.ErrTooManyAttempts):
		return metrics.ResultThrottled
	default:
		return metrics.ResultFailure
	}
}
