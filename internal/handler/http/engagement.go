// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/go-chi/chi/v5"
)

// bookmarkState is the body of bookmark toggle and status responses.
type bookmarkState struct {
	Bookmarked bool `json:"bookmarked"`
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.services.EngagementService.ListComments(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, comments, http.StatusOK)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if err := h.decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.EngagementService.AddComment(r.Context(), sessionUser(r), chi.URLParam(r, "slug"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: app.MsgCommentAdded, Data: comment}, http.StatusCreated)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	state, err := h.services.EngagementService.ToggleLike(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, state, http.StatusOK)
}

// likeStatus works for anonymous callers, who never have liked the post.
func (h *Handler) likeStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	state, err := h.services.EngagementService.LikeStatus(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, state, http.StatusOK)
}

func (h *Handler) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	bookmarked, err := h.services.EngagementService.ToggleBookmark(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, bookmarkState{Bookmarked: bookmarked}, http.StatusOK)
}

func (h *Handler) bookmarkStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	bookmarked, err := h.services.EngagementService.BookmarkStatus(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, bookmarkState{Bookmarked: bookmarked}, http.StatusOK)
}
