// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the inbound transports of the blog server.
package handler

import (
	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/handler/http"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transports enabled in cfg. identity may be nil
// when federated login is not configured.
func NewHandlers(
	services *service.Services,
	identity adapter.IdentityProvider,
	metrics *metrics.Metrics,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, identity, metrics, cfg, logger),
	}, nil
}
