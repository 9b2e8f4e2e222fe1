// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the service
// layer.
//
// Struct payloads are validated through go-playground/validator tags. Patch
// payloads built from [models.Optional] fields are checked field by field,
// because "absent" and "cleared" carry meaning that tags cannot express.
//
// Every failure is a *[ValidationError] naming the offending JSON field, so
// the HTTP layer can answer 400 with the field that failed.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally restricts the
	// reported failures to the named JSON fields.
	Validate(context.Context, any, ...string) error
}
