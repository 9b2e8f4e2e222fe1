// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Post is a blog post. Author name and image are denormalized for listing.
type Post struct {
	PostID        string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	AuthorID      string    `json:"author_id"`
	Author        string    `json:"author"`
	AuthorImg     string    `json:"author_img"`
	Thumbnail     string    `json:"thumbnail"`
	Date          time.Time `json:"date"`
	IsPublished   bool      `json:"is_published"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// PostInput is the body of create and update requests.
type PostInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=500"`
	Content     string `json:"content" validate:"required"`
	Category    string `json:"category" validate:"required,max=64"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,url"`
	IsPublished *bool  `json:"is_published"`
}

// PostFilter narrows post listings.
type PostFilter struct {
	AuthorID      string
	Category      string
	OnlyPublished bool
	Limit         uint64
	Offset        uint64
}

// Comment is a reader comment on a post.
type Comment struct {
	CommentID string        `json:"id"`
	PostID    string        `json:"post_id"`
	UserID    string        `json:"user_id"`
	Content   string        `json:"content"`
	Author    AuthorSummary `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CommentInput is the body of an add-comment request.
type CommentInput struct {
	Content string `json:"content" validate:"notblank,max=2000"`
}

// LikeState is the result of a like toggle or status query.
type LikeState struct {
	UserLiked  bool  `json:"user_liked"`
	LikesCount int64 `json:"likes_count"`
}

// Subscription is a newsletter e-mail subscription.
type Subscription struct {
	SubscriptionID string    `json:"id"`
	Email          string    `json:"email"`
	Date           time.Time `json:"date"`
}
