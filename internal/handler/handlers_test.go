// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers_HTTPAddress(t *testing.T) {
	cfg := config.StructuredConfig{
		Server: config.Server{HTTPAddress: ":8080"},
	}

	h, err := NewHandlers(&service.Services{}, nil, nil, cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

// TestNewHandlers_NoAddress verifies that an empty configuration is
// rejected with errNoHandlersAreCreated.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, nil, nil, config.StructuredConfig{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_FederatedLoginOptional(t *testing.T) {
	cfg := config.StructuredConfig{
		App:    config.App{BaseURL: "http://blog.test/"},
		Server: config.Server{HTTPAddress: "localhost:8080"},
	}

	h, err := NewHandlers(&service.Services{}, nil, nil, cfg, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, h.HTTP.Init())
}
