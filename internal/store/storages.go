// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/sosumi-blog/internal/logger"

// Storages groups every repository the service layer depends on.
type Storages struct {
	UserRepository         UserRepository
	PostRepository         PostRepository
	CommentRepository      CommentRepository
	EngagementRepository   EngagementRepository
	SubscriptionRepository SubscriptionRepository
	AttemptLimiter         AttemptLimiter
}

// NewStorages builds the PostgreSQL repositories on top of db. limiter may
// be nil, in which case every attempt is allowed.
func NewStorages(db *DB, limiter AttemptLimiter, log *logger.Logger) *Storages {
	if limiter == nil {
		limiter = noopLimiter{}
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		PostRepository:         NewPostRepository(db, log),
		CommentRepository:      NewCommentRepository(db, log),
		EngagementRepository:   NewEngagementRepository(db, log),
		SubscriptionRepository: NewSubscriptionRepository(db, log),
		AttemptLimiter:         limiter,
	}
}
