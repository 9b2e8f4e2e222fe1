// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
)

// notFound answers unknown routes with the JSON error envelope.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgNotFound}, http.StatusNotFound)
}

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
// A known path requested with an unsupported method is answered exactly
// like an unknown path, so callers cannot probe which routes exist.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	notFound(w, r)
}
