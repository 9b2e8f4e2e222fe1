// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrFederatedLoginDisabled = errors.New("federated login is not configured")
	ErrImageStorageDisabled   = errors.New("image storage is not configured")

	ErrExchangingCode   = errors.New("failed to exchange authorization code")
	ErrMissingIDToken   = errors.New("missing id_token in provider response")
	ErrVerifyingIDToken = errors.New("failed to verify id_token")
	ErrMissingEmail     = errors.New("provider did not return an email")
	ErrEmailNotVerified = errors.New("provider email is not verified")

	ErrSendingMail    = errors.New("failed to send mail")
	ErrUploadingImage = errors.New("failed to upload image")
)
