// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/store"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
	"github.com/MKhiriev/sosumi-blog/models"
)

// MaxImageSize is the largest accepted profile image.
const MaxImageSize = 5 << 20

const profileImagePrefix = "profile-images"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type profileService struct {
	userRepository store.UserRepository

	// images is nil when object storage is not configured.
	images adapter.ImageStore

	ids idGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewProfileService constructs a ProfileService. images may be nil, in
// which case UploadProfileImage fails with adapter.ErrImageStorageDisabled.
func NewProfileService(userRepository store.UserRepository, images adapter.ImageStore, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository: userRepository,
		images:         images,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

func (s *profileService) GetUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the present fields of update to the user.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	return s.patch(ctx, userID, update)
}

// UpdateBio sets the bio. An empty bio is allowed, an absent one is not.
func (s *profileService) UpdateBio(ctx context.Context, userID string, update models.BioUpdate) (models.User, error) {
	if !update.Bio.Set {
		return models.User{}, validators.NewValidationError("bio", "bio is required")
	}
	return s.patch(ctx, userID, models.ProfileUpdate{Bio: update.Bio})
}

// UploadProfileImage stores the image and points the avatar URL at it.
func (s *profileService) UploadProfileImage(ctx context.Context, userID string, image models.ImageUpload) (models.User, error) {
	log := logger.FromContext(ctx)

	if s.images == nil {
		return models.User{}, adapter.ErrImageStorageDisabled
	}

	ext, ok := imageExtensions[image.ContentType]
	if !ok {
		return models.User{}, validators.NewValidationError("profilePicture", "profilePicture must be a JPEG, PNG, GIF or WebP image")
	}
	if image.Size <= 0 || image.Size > MaxImageSize {
		return models.User{}, validators.NewValidationError("profilePicture", "profilePicture must not exceed %d bytes", MaxImageSize)
	}

	key := path.Join(profileImagePrefix, userID, s.ids.Generate()+ext)
	url, err := s.images.PutImage(ctx, key, image.Body, image.Size, image.ContentType)
	if err != nil {
		log.Err(err).Str("key", key).Msg("profile image upload failed")
		return models.User{}, fmt.Errorf("profile image upload failed: %w", err)
	}

	return s.patch(ctx, userID, models.ProfileUpdate{ProfilePictureURL: models.Some(url)})
}

// patch reads the user, applies update and writes it back with the read
// version. A concurrent writer costs one retry.
func (s *profileService) patch(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	user, err := s.patchOnce(ctx, userID, update)
	if errors.Is(err, store.ErrVersionConflict) {
		logger.FromContext(ctx).Warn().Str("user_id", userID).Msg("profile update conflicted, retrying")
		user, err = s.patchOnce(ctx, userID, update)
	}
	return user, err
}

func (s *profileService) patchOnce(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if update.Empty() {
		return user, nil
	}
	update.Apply(&user)

	now := s.now()
	version, err := s.userRepository.ApplyUserWrite(ctx, store.UserWrite{UserID: userID, Update: &user, Now: now})
	if err != nil {
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}
	user.Version = version
	user.UpdatedAt = now

	return user, nil
}
