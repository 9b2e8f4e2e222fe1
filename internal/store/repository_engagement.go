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

type engagementRepository struct {
	*DB
	logger *logger.Logger
}

// NewEngagementRepository constructs an [EngagementRepository] backed by db.
func NewEngagementRepository(db *DB, logger *logger.Logger) EngagementRepository {
	return &engagementRepository{
		DB:     db,
		logger: logger,
	}
}

// ToggleLike removes an existing like or inserts a new one, adjusting
// likes_count in the same transaction. The counter never drops below zero.
func (e *engagementRepository) ToggleLike(ctx context.Context, postID, userID string) (models.LikeState, error) {
	log := logger.FromContext(ctx)

	tx, err := e.BeginTx(ctx, nil)
	if err != nil {
		return models.LikeState{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, deleteLike, postID, userID)
	if err != nil {
		log.Err(err).Str("func", "engagementRepository.ToggleLike").Str("post_id", postID).Msg("failed to delete like")
		return models.LikeState{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	state := models.LikeState{UserLiked: false}
	delta := -1
	if n, _ := res.RowsAffected(); n == 0 {
		res, err = tx.ExecContext(ctx, insertLike, postID, userID)
		if err != nil {
			log.Err(err).Str("func", "engagementRepository.ToggleLike").Str("post_id", postID).Msg("failed to insert like")
			return models.LikeState{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		state.UserLiked = true
		// a concurrent toggle may have inserted the row first
		inserted, _ := res.RowsAffected()
		delta = int(inserted)
	}

	if err = tx.QueryRowContext(ctx, adjustLikesCount, postID, delta).Scan(&state.LikesCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LikeState{}, ErrPostNotFound
		}
		return models.LikeState{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return models.LikeState{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return state, nil
}

// LikeStatus reports the like count and whether userID liked the post.
// An empty userID is never liked.
func (e *engagementRepository) LikeStatus(ctx context.Context, postID, userID string) (models.LikeState, error) {
	var state models.LikeState
	err := e.QueryRowContext(ctx, likeStatus, postID, userID).Scan(&state.LikesCount, &state.UserLiked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LikeState{}, ErrPostNotFound
		}
		return models.LikeState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return state, nil
}

// ToggleBookmark removes an existing bookmark or inserts a new one.
func (e *engagementRepository) ToggleBookmark(ctx context.Context, postID, userID string) (bool, error) {
	res, err := e.ExecContext(ctx, deleteBookmark, postID, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}

	if _, err = e.ExecContext(ctx, insertBookmark, postID, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "engagementRepository.ToggleBookmark").Str("post_id", postID).Msg("failed to insert bookmark")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return true, nil
}

// IsBookmarked reports whether userID bookmarked postID.
func (e *engagementRepository) IsBookmarked(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool
	if err := e.QueryRowContext(ctx, bookmarkExists, postID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}
