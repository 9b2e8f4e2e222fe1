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

type commentRepository struct {
	*DB
	logger *logger.Logger
}

// NewCommentRepository constructs a [CommentRepository] backed by db.
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	return &commentRepository{
		DB:     db,
		logger: logger,
	}
}

// AddComment inserts comment and bumps posts.comments_count in one
// transaction. The returned comment carries its author summary.
func (c *commentRepository) AddComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "commentRepository.AddComment").Msg("failed to begin transaction")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, insertComment, comment.CommentID, comment.PostID, comment.UserID, comment.Content, comment.CreatedAt); err != nil {
		log.Err(err).Str("func", "commentRepository.AddComment").Str("post_id", comment.PostID).Msg("failed to insert comment")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	res, err := tx.ExecContext(ctx, incrementCommentsCount, comment.PostID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Comment{}, ErrPostNotFound
	}

	a := &comment.Author
	if err = tx.QueryRowContext(ctx, findCommentAuthor, comment.UserID).Scan(&a.UserID, &a.Username, &a.Name, &a.ProfilePictureURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Comment{}, ErrNoUserWasFound
		}
		return models.Comment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "commentRepository.AddComment").Msg("failed to commit transaction")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	comment.UpdatedAt = comment.CreatedAt
	return comment, nil
}

// ListComments returns the comments of postID, oldest first.
func (c *commentRepository) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	rows, err := c.QueryContext(ctx, listComments, postID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "commentRepository.ListComments").Str("post_id", postID).Msg("failed to list comments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0, 16)
	for rows.Next() {
		var cm models.Comment
		if err = rows.Scan(
			&cm.CommentID, &cm.PostID, &cm.UserID, &cm.Content, &cm.CreatedAt, &cm.UpdatedAt,
			&cm.Author.UserID, &cm.Author.Username, &cm.Author.Name, &cm.Author.ProfilePictureURL,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		comments = append(comments, cm)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return comments, nil
}
