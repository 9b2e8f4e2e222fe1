// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/sosumi-blog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserWrite is one atomic write of the user aggregate: an optional versioned
// update of the users row plus allowlist mutations. All parts are applied in
// a single transaction, so a login is exactly one write.
type UserWrite struct {
	UserID string

	// Update, when non-nil, replaces the mutable columns of the users row.
	// Update.Version must equal the stored version or the whole write fails
	// with ErrVersionConflict.
	Update *models.User

	// AddSession is inserted unless the same token is already allowlisted.
	// Expired entries of the user are pruned first.
	AddSession *models.SessionToken

	// MaxSessions caps the allowlist after AddSession by evicting the
	// oldest entries. Zero disables the cap.
	MaxSessions int

	// RemoveSession deletes exactly this token, if present.
	RemoveSession string

	// RemoveAllSessions revokes every session of the user.
	RemoveAllSessions bool

	// Now is the reference time for pruning and updated_at.
	Now time.Time
}

// UserRepository is the persistence collaborator of the credential and
// session core.
type UserRepository interface {
	// CreateUser inserts user and, when session is non-nil, its first
	// allowlist entry in the same transaction.
	CreateUser(ctx context.Context, user models.User, session *models.SessionToken) (models.User, error)

	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByResetToken(ctx context.Context, tokenDigest string) (models.User, error)

	// ApplyUserWrite performs w atomically and returns the resulting row
	// version.
	ApplyUserWrite(ctx context.Context, w UserWrite) (int64, error)

	// HasSessionToken reports whether token is allowlisted for userID and
	// its stored expiry is after now.
	HasSessionToken(ctx context.Context, userID, token string, now time.Time) (bool, error)
}

// PostRepository persists blog posts.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	FindPostBySlug(ctx context.Context, slug string) (models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	IncrementViews(ctx context.Context, postID string) error
}

// CommentRepository persists comments and keeps posts.comments_count in step.
type CommentRepository interface {
	AddComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
}

// EngagementRepository persists likes and bookmarks.
type EngagementRepository interface {
	// ToggleLike flips the like of userID on postID and returns the new state.
	ToggleLike(ctx context.Context, postID, userID string) (models.LikeState, error)
	LikeStatus(ctx context.Context, postID, userID string) (models.LikeState, error)

	// ToggleBookmark flips the bookmark and reports whether it is now set.
	ToggleBookmark(ctx context.Context, postID, userID string) (bool, error)
	IsBookmarked(ctx context.Context, postID, userID string) (bool, error)
}

// SubscriptionRepository persists newsletter subscriptions.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}

// AttemptLimiter counts attempts per key inside a fixed window.
type AttemptLimiter interface {
	// Allow records one attempt for key and reports whether it is within
	// the limit.
	Allow(ctx context.Context, key string) (bool, error)

	// Reset forgets the attempts recorded for key.
	Reset(ctx context.Context, key string) error
}
