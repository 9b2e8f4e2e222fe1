// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrValidation is matched by every *ValidationError through errors.Is.
	ErrValidation = errors.New("validation error")
)

// ValidationError reports the first field that failed validation. Field is
// the JSON name of the field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field with a formatted
// message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
