// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
	"github.com/MKhiriev/sosumi-blog/models"
)

type engagementService struct {
	postRepository       store.PostRepository
	commentRepository    store.CommentRepository
	engagementRepository store.EngagementRepository

	ids idGenerator
	now func() time.Time

	logger *logger.Logger
}

func NewEngagementService(
	postRepository store.PostRepository,
	commentRepository store.CommentRepository,
	engagementRepository store.EngagementRepository,
	logger *logger.Logger,
) EngagementService {
	return &engagementService{
		postRepository:       postRepository,
		commentRepository:    commentRepository,
		engagementRepository: engagementRepository,
		ids:                  utils.NewUUIDGenerator(),
		now:                  time.Now,
		logger:               logger,
	}
}

// ListComments returns the comments of the post, oldest first.
func (s *engagementService) ListComments(ctx context.Context, slug string) ([]models.Comment, error) {
	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.ListComments(ctx, post.PostID)
	if err != nil {
		return nil, fmt.Errorf("listing comments failed: %w", err)
	}
	return comments, nil
}

// AddComment adds a comment by user. Commenting requires a complete profile.
func (s *engagementService) AddComment(ctx context.Context, user models.User, slug string, in models.CommentInput) (models.Comment, error) {
	if !user.IsProfileComplete() {
		return models.Comment{}, ErrProfileIncomplete
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return models.Comment{}, validators.NewValidationError("content", "content is required")
	}

	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return models.Comment{}, err
	}

	comment, err := s.commentRepository.AddComment(ctx, models.Comment{
		CommentID: s.ids.Generate(),
		PostID:    post.PostID,
		UserID:    user.UserID,
		Content:   content,
		CreatedAt: s.now(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("post_id", post.PostID).Msg("adding comment failed")
		return models.Comment{}, fmt.Errorf("adding comment failed: %w", err)
	}

	return comment, nil
}

func (s *engagementService) ToggleLike(ctx context.Context, userID, slug string) (models.LikeState, error) {
	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return models.LikeState{}, err
	}

	state, err := s.engagementRepository.ToggleLike(ctx, post.PostID, userID)
	if err != nil {
		return models.LikeState{}, fmt.Errorf("toggling like failed: %w", err)
	}
	return state, nil
}

// LikeStatus reports the like count and, for a signed-in userID, whether
// that user liked the post.
func (s *engagementService) LikeStatus(ctx context.Context, userID, slug string) (models.LikeState, error) {
	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return models.LikeState{}, err
	}

	if userID == "" {
		return models.LikeState{LikesCount: post.LikesCount}, nil
	}

	state, err := s.engagementRepository.LikeStatus(ctx, post.PostID, userID)
	if err != nil {
		return models.LikeState{}, fmt.Errorf("reading like status failed: %w", err)
	}
	return state, nil
}

func (s *engagementService) ToggleBookmark(ctx context.Context, userID, slug string) (bool, error) {
	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return false, err
	}

	bookmarked, err := s.engagementRepository.ToggleBookmark(ctx, post.PostID, userID)
	if err != nil {
		return false, fmt.Errorf("toggling bookmark failed: %w", err)
	}
	return bookmarked, nil
}

// BookmarkStatus is false for anonymous callers.
func (s *engagementService) BookmarkStatus(ctx context.Context, userID, slug string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return false, err
	}

	bookmarked, err := s.engagementRepository.IsBookmarked(ctx, post.PostID, userID)
	if err != nil {
		return false, fmt.Errorf("reading bookmark status failed: %w", err)
	}
	return bookmarked, nil
}
