// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/gosimple/slug"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	slugProbeLimit = 1000
)

type postService struct {
	postRepository store.PostRepository

	ids idGenerator
	now func() time.Time

	logger *logger.Logger
}

func NewPostService(postRepository store.PostRepository, logger *logger.Logger) PostService {
	return &postService{
		postRepository: postRepository,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

// CreatePost publishes a post by author. The slug is derived from the title
// and made unique by probing title, title-1, title-2, ...
func (s *postService) CreatePost(ctx context.Context, author models.User, in models.PostInput) (models.Post, error) {
	log := logger.FromContext(ctx)

	if !author.IsProfileComplete() {
		return models.Post{}, ErrProfileIncomplete
	}

	now := s.now()
	post := models.Post{
		PostID:      s.ids.Generate(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Content:     in.Content,
		Category:    strings.TrimSpace(in.Category),
		AuthorID:    author.UserID,
		Author:      authorName(author),
		AuthorImg:   author.ProfilePictureURL,
		Thumbnail:   in.Thumbnail,
		Date:        now,
		IsPublished: in.IsPublished == nil || *in.IsPublished,
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		post.Slug, err = s.freeSlug(ctx, post.Title)
		if err != nil {
			log.Err(err).Msg("slug generation failed")
			return models.Post{}, err
		}

		var created models.Post
		created, err = s.postRepository.CreatePost(ctx, post)
		if err == nil {
			log.Info().Str("post_id", created.PostID).Str("slug", created.Slug).Msg("post created")
			return created, nil
		}
		if !errors.Is(err, store.ErrSlugAlreadyExists) {
			break
		}
	}

	log.Err(err).Msg("post creation failed")
	return models.Post{}, fmt.Errorf("post creation failed: %w", err)
}

func (s *postService) freeSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "post"
	}

	for i := 0; i < slugProbeLimit; i++ {
		candidate := base
		if i > 0 {
			candidate = base + "-" + strconv.Itoa(i)
		}

		taken, err := s.postRepository.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug probe failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: base %q", ErrSlugSpaceExhausted, base)
}

// ListPublished lists published posts, newest first.
func (s *postService) ListPublished(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	filter.OnlyPublished = true
	switch {
	case filter.Limit == 0:
		filter.Limit = defaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}

	posts, err := s.postRepository.ListPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing posts failed: %w", err)
	}
	return posts, nil
}

// ListByAuthor lists every post of authorID, drafts included.
func (s *postService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	posts, err := s.postRepository.ListPosts(ctx, models.PostFilter{AuthorID: authorID})
	if err != nil {
		return nil, fmt.Errorf("listing author posts failed: %w", err)
	}
	return posts, nil
}

// GetPost returns the post and counts one view. A failed view counter does
// not fail the read.
func (s *postService) GetPost(ctx context.Context, viewer models.User, slug string) (models.Post, error) {
	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return models.Post{}, err
	}

	if !post.IsPublished && !canManage(viewer, post) {
		return models.Post{}, store.ErrPostNotFound
	}

	if err = s.postRepository.IncrementViews(ctx, post.PostID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("post_id", post.PostID).Msg("failed to count view")
	} else {
		post.Views++
	}

	return post, nil
}

// UpdatePost rewrites the editable fields. The slug stays stable so that
// links keep working after a title change.
func (s *postService) UpdatePost(ctx context.Context, actor models.User, slug string, in models.PostInput) (models.Post, error) {
	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return models.Post{}, err
	}
	if !canManage(actor, post) {
		return models.Post{}, ErrForbidden
	}
	if !actor.IsAdmin() && !actor.IsProfileComplete() {
		return models.Post{}, ErrProfileIncomplete
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Description = strings.TrimSpace(in.Description)
	post.Content = in.Content
	post.Category = strings.TrimSpace(in.Category)
	post.Thumbnail = in.Thumbnail
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	post.UpdatedAt = s.now()

	updated, err := s.postRepository.UpdatePost(ctx, post)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("post_id", post.PostID).Msg("post update failed")
		return models.Post{}, fmt.Errorf("post update failed: %w", err)
	}
	return updated, nil
}

func (s *postService) DeletePost(ctx context.Context, actor models.User, slug string) error {
	post, err := s.postRepository.FindPostBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !canManage(actor, post) {
		return ErrForbidden
	}

	if err = s.postRepository.DeletePost(ctx, post.PostID); err != nil {
		return fmt.Errorf("post deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("post_id", post.PostID).Msg("post deleted")
	return nil
}

// canManage reports whether user may edit or delete post.
func canManage(user models.User, post models.Post) bool {
	return user.UserID != "" && (user.UserID == post.AuthorID || user.IsAdmin())
}

func authorName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.UsernameOrEmpty()
}
