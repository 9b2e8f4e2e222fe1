// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/go-chi/chi/v5"
)

// listPosts returns published posts, newest first.
// Query: category, limit, offset.
func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.PostFilter{Category: strings.TrimSpace(query.Get("category"))}

	var err error
	if filter.Limit, err = uintParam(query.Get("limit"), "limit"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.Offset, err = uintParam(query.Get("offset"), "offset"); err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.services.PostService.ListPublished(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, posts, http.StatusOK)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.services.PostService.GetPost(r.Context(), sessionUser(r), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, post, http.StatusOK)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := h.decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.CreatePost(r.Context(), sessionUser(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, post, http.StatusCreated)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := h.decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.services.PostService.UpdatePost(r.Context(), sessionUser(r), chi.URLParam(r, "slug"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, post, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PostService.DeletePost(r.Context(), sessionUser(r), chi.URLParam(r, "slug")); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgPostDeleted, http.StatusOK)
}

// uintParam parses an optional non-negative query parameter.
func uintParam(raw, field string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, validators.NewValidationError(field, "%s must be a non-negative integer", field)
	}
	return v, nil
}
