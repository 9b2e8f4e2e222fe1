// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/MKhiriev/sosumi-blog/models"
	"github.com/go-playground/validator/v10"
)

// RequestValidator implements [Validator] for every request payload of the
// HTTP API.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a RequestValidator with JSON field naming
// and the custom "notblank" tag registered.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank rejects strings that are empty after trimming.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &RequestValidator{validate: v}
}

// Validate dispatches on the dynamic type of obj. Patch payloads are checked
// by hand; every other struct goes through the tag validator. When fields
// are given, failures on other fields are ignored.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ProfileUpdate:
		return v.validateProfileUpdate(value)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value)
	case models.BioUpdate:
		return v.validateBioUpdate(value)
	case *models.BioUpdate:
		return v.validateBioUpdate(*value)
	}

	if obj == nil {
		return ErrUnsupportedType
	}
	kind := reflect.TypeOf(obj).Kind()
	if kind == reflect.Pointer {
		kind = reflect.TypeOf(obj).Elem().Kind()
	}
	if kind != reflect.Struct {
		return ErrUnsupportedType
	}

	err := v.validate.StructCtx(ctx, obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		if len(fields) > 0 && !slices.Contains(fields, fe.Field()) {
			continue
		}
		return fieldError(fe)
	}

	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := fe.Field()

	switch fe.Tag() {
	case "required", "notblank":
		return NewValidationError(field, "%s is required", field)
	case "min":
		return NewValidationError(field, "%s must be at least %s characters long", field, fe.Param())
	case "max":
		return NewValidationError(field, "%s must be at most %s characters long", field, fe.Param())
	case "email":
		return NewValidationError(field, "%s must be a valid email address", field)
	case "url":
		return NewValidationError(field, "%s must be a valid URL", field)
	default:
		return NewValidationError(field, "%s is invalid", field)
	}
}
