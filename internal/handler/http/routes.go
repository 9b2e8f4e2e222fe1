// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// compressionLevel is the gzip level of JSON responses.
const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.metrics != nil {
		router.Use(h.metrics.Middleware)
	}
	router.Use(middleware.Compress(compressionLevel, "application/json", "text/plain"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.signup)
			r.Post("/signin", h.signin)
			r.With(h.optionalAuth).Post("/logout", h.logout)
			r.Post("/forgot-password", h.forgotPassword)
			r.Post("/reset-password", h.resetPassword)
		})

		r.Get("/google", h.googleLogin)
		r.Get("/google/callback", h.googleCallback)

		// soft gate: an incomplete profile can still read and edit itself
		r.Route("/user", func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/", h.getUser)
			r.Post("/profile", h.updateProfile)
			r.Post("/bio", h.updateBio)
			r.Post("/profile-image", h.uploadProfileImage)
			r.Get("/blogs", h.listMyPosts)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.With(h.auth, h.requireCompleteProfile).Post("/", h.createPost)

			r.Route("/{slug}", func(r chi.Router) {
				r.With(h.optionalAuth).Get("/", h.getPost)
				r.With(h.auth).Put("/", h.updatePost)
				r.With(h.auth).Delete("/", h.deletePost)

				r.Get("/comments", h.listComments)
				r.With(h.auth, h.requireCompleteProfile).Post("/comments", h.addComment)

				r.With(h.optionalAuth).Get("/likes", h.likeStatus)
				r.With(h.auth).Post("/likes", h.toggleLike)

				r.With(h.optionalAuth).Get("/bookmark", h.bookmarkStatus)
				r.With(h.auth).Post("/bookmark", h.toggleBookmark)
			})
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", h.subscribe)

			r.Group(func(r chi.Router) {
				r.Use(h.auth, h.requireAdmin)
				r.Get("/", h.listSubscriptions)
				r.Delete("/", h.deleteSubscription)
				r.Delete("/{id}", h.deleteSubscription)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}
