// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	subscription, err := h.services.SubscriptionService.Subscribe(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, subscription, http.StatusCreated)
}

func (h *Handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := h.services.SubscriptionService.ListSubscriptions(r.Context(), sessionUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, subscriptions, http.StatusOK)
}

// deleteSubscription takes the id from the path or, for older clients, from
// the "id" query parameter.
func (h *Handler) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}

	if err := h.services.SubscriptionService.DeleteSubscription(r.Context(), sessionUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgSubscriptionGone, http.StatusOK)
}
