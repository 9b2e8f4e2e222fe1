// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP server of the blog and stops it gracefully
// on SIGINT, SIGTERM or SIGQUIT.
package server
