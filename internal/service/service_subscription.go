// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
	"github.com/MKhiriev/sosumi-blog/models"
)

type subscriptionService struct {
	subscriptionRepository store.SubscriptionRepository

	ids idGenerator
	now func() time.Time

	logger *logger.Logger
}

func NewSubscriptionService(subscriptionRepository store.SubscriptionRepository, logger *logger.Logger) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		ids:                    utils.NewUUIDGenerator(),
		now:                    time.Now,
		logger:                 logger,
	}
}

// Subscribe registers the e-mail. A duplicate yields
// store.ErrSubscriptionAlreadyExists.
func (s *subscriptionService) Subscribe(ctx context.Context, req models.SubscribeRequest) (models.Subscription, error) {
	email := models.NormalizeEmail(req.Email)
	if email == "" {
		return models.Subscription{}, validators.NewValidationError("email", "email is required")
	}

	sub, err := s.subscriptionRepository.CreateSubscription(ctx, models.Subscription{
		SubscriptionID: s.ids.Generate(),
		Email:          email,
		Date:           s.now(),
	})
	if err != nil {
		return models.Subscription{}, fmt.Errorf("subscribing failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("subscription_id", sub.SubscriptionID).Msg("new subscription")
	return sub, nil
}

// ListSubscriptions returns all subscriptions, newest first. Admins only.
func (s *subscriptionService) ListSubscriptions(ctx context.Context, actor models.User) ([]models.Subscription, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	subs, err := s.subscriptionRepository.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions failed: %w", err)
	}
	return subs, nil
}

// DeleteSubscription removes a subscription by id. Admins only.
func (s *subscriptionService) DeleteSubscription(ctx context.Context, actor models.User, subscriptionID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if subscriptionID == "" {
		return validators.NewValidationError("id", "id is required")
	}

	if err := s.subscriptionRepository.DeleteSubscription(ctx, subscriptionID); err != nil {
		return fmt.Errorf("deleting subscription failed: %w", err)
	}
	return nil
}
