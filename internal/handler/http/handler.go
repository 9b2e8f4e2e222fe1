// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"strings"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/internal/validators"
)

type Handler struct {
	services *service.Services

	// identity is nil when federated login is not configured.
	identity adapter.IdentityProvider

	// metrics may be nil; recording is skipped then.
	metrics *metrics.Metrics

	validator validators.Validator

	tokenDuration  time.Duration
	secureCookies  bool
	baseURL        string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(
	services *service.Services,
	identity adapter.IdentityProvider,
	metrics *metrics.Metrics,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) *Handler {
	logger.Info().Bool("federated_login", identity != nil).Msg("http handler created")
	return &Handler{
		services:       services,
		identity:       identity,
		metrics:        metrics,
		validator:      validators.NewRequestValidator(),
		tokenDuration:  cfg.App.TokenDuration,
		secureCookies:  cfg.App.Production,
		baseURL:        strings.TrimRight(cfg.App.BaseURL, "/"),
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}

func (h *Handler) recordAuth(kind, result string) {
	if h.metrics != nil {
		h.metrics.Auth(kind, result)
	}
}
