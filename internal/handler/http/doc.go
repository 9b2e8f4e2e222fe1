// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of the blog server.
//
// It exposes route wiring, request handlers and middleware. Cross-cutting
// concerns such as session authentication, request tracing, access logging,
// metrics and response compression are handled in this package before
// requests are delegated to the service layer.
//
// Sessions travel in an httpOnly cookie named "token". API clients that
// cannot keep cookies may send the same token as "Authorization: Bearer".
package http
