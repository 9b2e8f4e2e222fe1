// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/sosumi-blog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns the credential and session lifecycle.
type AuthService interface {
	// Signup creates a local account and its first session in one write.
	Signup(ctx context.Context, req models.SignupRequest) (models.Session, error)

	// LoginLocal authenticates email and password. Every rejection reason
	// matches ErrInvalidCredentials.
	LoginLocal(ctx context.Context, creds models.Credentials) (models.Session, error)

	// LoginFederated resolves the provider claims to a local user, creating
	// it when absent, and issues a session.
	LoginFederated(ctx context.Context, claims models.FederatedClaims) (models.Session, error)

	// IssueSession signs a new token for user and allowlists it.
	IssueSession(ctx context.Context, user models.User) (models.Session, error)

	// Logout revokes token. Other sessions of the user stay active.
	Logout(ctx context.Context, userID, token string) error

	// Authenticate returns the owner of an active session: the token must
	// verify and be allowlisted.
	Authenticate(ctx context.Context, token string) (models.User, error)

	ForgotPassword(ctx context.Context, req models.PasswordResetRequest) error
	ResetPassword(ctx context.Context, req models.PasswordResetConfirm) error
}

// ProfileService is the self-service profile management.
type ProfileService interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	UpdateBio(ctx context.Context, userID string, update models.BioUpdate) (models.User, error)
	UploadProfileImage(ctx context.Context, userID string, image models.ImageUpload) (models.User, error)
}

// PostService manages blog posts.
type PostService interface {
	CreatePost(ctx context.Context, author models.User, in models.PostInput) (models.Post, error)
	ListPublished(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)

	// GetPost returns the post and counts a view. Unpublished posts are only
	// visible to their author and admins.
	GetPost(ctx context.Context, viewer models.User, slug string) (models.Post, error)

	UpdatePost(ctx context.Context, actor models.User, slug string, in models.PostInput) (models.Post, error)
	DeletePost(ctx context.Context, actor models.User, slug string) error
}

// EngagementService manages comments, likes and bookmarks.
type EngagementService interface {
	ListComments(ctx context.Context, slug string) ([]models.Comment, error)
	AddComment(ctx context.Context, user models.User, slug string, in models.CommentInput) (models.Comment, error)

	ToggleLike(ctx context.Context, userID, slug string) (models.LikeState, error)
	LikeStatus(ctx context.Context, userID, slug string) (models.LikeState, error)

	ToggleBookmark(ctx context.Context, userID, slug string) (bool, error)
	BookmarkStatus(ctx context.Context, userID, slug string) (bool, error)
}

// SubscriptionService manages newsletter subscriptions.
type SubscriptionService interface {
	Subscribe(ctx context.Context, req models.SubscribeRequest) (models.Subscription, error)
	ListSubscriptions(ctx context.Context, actor models.User) ([]models.Subscription, error)
	DeleteSubscription(ctx context.Context, actor models.User, subscriptionID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
