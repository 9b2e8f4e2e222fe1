// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
	"github.com/MKhiriev/sosumi-blog/models"
)

type errorStatus struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorStatus{
	ErrNoSessionToken:     {http.StatusUnauthorized, app.MsgNotAuthenticated},
	ErrInvalidRequestBody: {http.StatusBadRequest, app.MsgInvalidDataProvided},
	ErrMissingImage:       {http.StatusBadRequest, app.MsgInvalidDataProvided},

	service.ErrInvalidCredentials:      {http.StatusUnauthorized, app.MsgInvalidCredentials},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgNotAuthenticated},
	service.ErrForbidden:               {http.StatusForbidden, app.MsgForbidden},
	service.ErrProfileIncomplete:       {http.StatusForbidden, app.MsgProfileIncomplete},
	service.ErrTooManyAttempts:         {http.StatusTooManyRequests, app.MsgTooManyAttempts},
	service.ErrResetTokenInvalid:       {http.StatusBadRequest, app.MsgResetTokenInvalid},
	service.ErrUsernameSpaceExhausted:  {http.StatusConflict, app.MsgUsernameAlreadyExists},
	service.ErrSlugSpaceExhausted:      {http.StatusConflict, app.MsgConflict},

	store.ErrEmailAlreadyExists:        {http.StatusConflict, app.MsgEmailAlreadyExists},
	store.ErrUsernameAlreadyExists:     {http.StatusConflict, app.MsgUsernameAlreadyExists},
	store.ErrVersionConflict:           {http.StatusConflict, app.MsgConflict},
	store.ErrSlugAlreadyExists:         {http.StatusConflict, app.MsgConflict},
	store.ErrSubscriptionAlreadyExists: {http.StatusConflict, app.MsgAlreadySubscribed},
	store.ErrNoUserWasFound:            {http.StatusNotFound, app.MsgNotFound},
	store.ErrPostNotFound:              {http.StatusNotFound, app.MsgNotFound},
	store.ErrCommentNotFound:           {http.StatusNotFound, app.MsgNotFound},
	store.ErrSubscriptionNotFound:      {http.StatusNotFound, app.MsgNotFound},

	adapter.ErrImageStorageDisabled:   {http.StatusServiceUnavailable, app.MsgImageStorageDisabled},
	adapter.ErrFederatedLoginDisabled: {http.StatusServiceUnavailable, app.MsgFederatedLoginDisabled},
}

// statusFromError resolves err to a status code and a client-safe message.
// Validation errors carry the offending field; anything unknown is a 500.
func statusFromError(err error) (int, models.ErrorResponse) {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, models.ErrorResponse{Message: validationErr.Message, Field: validationErr.Field}
	}

	for target, mapped := range errorStatusMap {
		if errors.Is(err, target) {
			return mapped.status, models.ErrorResponse{Message: mapped.message}
		}
	}
	return http.StatusInternalServerError, models.ErrorResponse{Message: app.MsgInternalServerError}
}

// writeError logs err and answers with the mapped status. The raw error is
// never written to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, body := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, body, status)
}
