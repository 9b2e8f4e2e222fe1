// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/models"
)

type subscriptionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSubscriptionRepository constructs a [SubscriptionRepository] backed by db.
func NewSubscriptionRepository(db *DB, logger *logger.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateSubscription inserts sub. A duplicate e-mail maps to
// [ErrSubscriptionAlreadyExists].
func (s *subscriptionRepository) CreateSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	if _, err := s.ExecContext(ctx, insertSubscription, sub.SubscriptionID, sub.Email, sub.Date); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == constraintSubscriptionsEmail {
			return models.Subscription{}, ErrSubscriptionAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "subscriptionRepository.CreateSubscription").Msg("failed to insert subscription")
		return models.Subscription{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return sub, nil
}

// ListSubscriptions returns every subscription, newest first.
func (s *subscriptionRepository) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := s.QueryContext(ctx, listSubscriptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	subs := make([]models.Subscription, 0, 32)
	for rows.Next() {
		var sub models.Subscription
		if err = rows.Scan(&sub.SubscriptionID, &sub.Email, &sub.Date); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return subs, nil
}

// DeleteSubscription removes the subscription with the given id.
func (s *subscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	res, err := s.ExecContext(ctx, deleteSubscription, subscriptionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
