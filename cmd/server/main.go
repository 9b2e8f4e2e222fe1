// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/adapter"
	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/crypto"
	"github.com/MKhiriev/sosumi-blog/internal/handler"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/MKhiriev/sosumi-blog/internal/metrics"
	"github.com/MKhiriev/sosumi-blog/internal/server"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// startupTimeout bounds connecting to the database, Redis and the identity
// provider.
const startupTimeout = 30 * time.Second

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}
	if cfg.App.Version == "dev" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLogger("sosumi-blog-server", cfg.App.LogLevel)
	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("base_url", cfg.App.BaseURL).
		Bool("production", cfg.App.Production).
		Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	limiter, err := store.NewRedisLimiter(ctx, cfg.Limiter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating attempt limiter")
	}

	storages := store.NewStorages(db, limiter, log)

	adapters := service.Adapters{Mailer: adapter.NewSMTPMailer(cfg.Mail, log)}
	images, err := adapter.NewS3ImageStore(ctx, cfg.Storage.S3, log)
	switch {
	case err == nil:
		adapters.Images = images
	case errors.Is(err, adapter.ErrImageStorageDisabled):
		log.Info().Msg("image storage disabled")
	default:
		log.Fatal().Err(err).Msg("error creating image storage")
	}

	// a nil interface, not a typed nil pointer, disables federated login
	var identity adapter.IdentityProvider
	google, err := adapter.NewGoogleProvider(ctx, cfg.OAuth.Google, log)
	switch {
	case err == nil:
		identity = google
	case errors.Is(err, adapter.ErrFederatedLoginDisabled):
		log.Info().Msg("federated login disabled")
	default:
		log.Fatal().Err(err).Msg("error creating identity provider")
	}

	services, err := service.NewServices(storages, adapters, crypto.NewBcryptHasher(cfg.App.BcryptCost), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	m := metrics.NewMetrics()
	if err = m.RegisterDB(db.DB, "postgres"); err != nil {
		log.Fatal().Err(err).Msg("error registering database metrics")
	}

	handlers, err := handler.NewHandlers(services, identity, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
