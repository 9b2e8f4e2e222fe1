// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/models"
)

type postRepository struct {
	*DB
	logger *logger.Logger
}

// NewPostRepository constructs a [PostRepository] backed by db.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	return &postRepository{
		DB:     db,
		logger: logger,
	}
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.PostID, &p.Title, &p.Slug, &p.Description, &p.Content, &p.Category,
		&p.AuthorID, &p.Author, &p.AuthorImg,
		&p.Thumbnail, &p.Date, &p.IsPublished, &p.LikesCount, &p.CommentsCount, &p.Views,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreatePost inserts post. A slug collision maps to [ErrSlugAlreadyExists].
func (p *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	err := p.QueryRowContext(ctx, createPost,
		post.PostID, post.Title, post.Slug, post.Description, post.Content, post.Category, post.AuthorID,
		post.Thumbnail, post.Date, post.IsPublished,
	).Scan(&post.LikesCount, &post.CommentsCount, &post.Views)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintPostsSlug {
			return models.Post{}, ErrSlugAlreadyExists
		}
		log.Err(err).Str("func", "postRepository.CreatePost").Str("slug", post.Slug).Msg("failed to insert post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	post.CreatedAt = post.Date
	post.UpdatedAt = post.Date
	return post, nil
}

// FindPostBySlug retrieves one post with its author's display name and image.
func (p *postRepository) FindPostBySlug(ctx context.Context, slug string) (models.Post, error) {
	var post models.Post
	err := p.withRetry(ctx, func() error {
		var scanErr error
		post, scanErr = scanPost(p.QueryRowContext(ctx, findPostBySlug, slug))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "postRepository.FindPostBySlug").Str("slug", slug).Msg("failed to find post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return post, nil
}

// SlugExists reports whether slug is taken.
func (p *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := p.QueryRowContext(ctx, slugExists, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

// ListPosts returns posts matching filter, newest first.
func (p *postRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPostsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "postRepository.ListPosts").Msg("failed to create query")
		return nil, err
	}

	rows, err := p.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "postRepository.ListPosts").Msg("failed to execute query for listing posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, 20)
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "postRepository.ListPosts").Msg("failed to scan post row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}

// UpdatePost writes the editable columns of post.
func (p *postRepository) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	err := p.QueryRowContext(ctx, updatePost,
		post.PostID, post.Title, post.Slug, post.Description, post.Content, post.Category,
		post.Thumbnail, post.IsPublished, post.UpdatedAt,
	).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintPostsSlug {
			return models.Post{}, ErrSlugAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "postRepository.UpdatePost").Str("post_id", post.PostID).Msg("failed to update post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return post, nil
}

// DeletePost removes the post; comments, likes and bookmarks cascade.
func (p *postRepository) DeletePost(ctx context.Context, postID string) error {
	res, err := p.ExecContext(ctx, deletePost, postID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "postRepository.DeletePost").Str("post_id", postID).Msg("failed to delete post")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPostNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (p *postRepository) IncrementViews(ctx context.Context, postID string) error {
	if _, err := p.ExecContext(ctx, incrementViews, postID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
