// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/crypto"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/store"
)

type Services struct {
	AuthService         AuthService
	ProfileService      ProfileService
	PostService         PostService
	EngagementService   EngagementService
	SubscriptionService SubscriptionService
	AppInfoService      AppInfoService
}

// Adapters are the outbound collaborators. Images may be nil when object
// storage is not configured.
type Adapters struct {
	Mailer adapter.Mailer
	Images adapter.ImageStore
}

func NewServices(storages *store.Storages, adapters Adapters, hasher crypto.PasswordHasher, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	engagementService := NewEngagementService(
		storages.PostRepository, storages.CommentRepository, storages.EngagementRepository, logger,
	)

	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, storages.AttemptLimiter, hasher, adapters.Mailer, cfg.App, logger),
		ProfileService:      NewProfileService(storages.UserRepository, adapters.Images, logger),
		PostService:         NewPostService(storages.PostRepository, logger),
		EngagementService:   engagementService,
		SubscriptionService: NewSubscriptionService(storages.SubscriptionRepository, logger),
		AppInfoService:      appInfoService,
	}, nil
}
