// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"unicode/utf8"

	"github.com/MKhiriev/sosumi-blog/models"
)

const (
	// MaxBioLength is the longest accepted bio, in characters.
	MaxBioLength = 500

	maxNameLength  = 100
	maxInterests   = 20
	maxFieldLength = 200
)

type lengthRule struct {
	field string
	value models.Optional[string]
	max   int
}

// validateProfileUpdate checks only the fields present in the patch.
// Fields are checked in form order so the reported field is stable.
func (v *RequestValidator) validateProfileUpdate(p models.ProfileUpdate) error {
	for _, r := range []lengthRule{
		{field: "first_name", value: p.FirstName, max: maxNameLength},
		{field: "last_name", value: p.LastName, max: maxNameLength},
		{field: "country", value: p.Country, max: maxNameLength},
		{field: "company", value: p.Company, max: maxFieldLength},
		{field: "city", value: p.City, max: maxFieldLength},
	} {
		if r.value.Set && utf8.RuneCountInString(r.value.Value) > r.max {
			return NewValidationError(r.field, "%s must be at most %d characters long", r.field, r.max)
		}
	}

	if p.Bio.Set && utf8.RuneCountInString(p.Bio.Value) > MaxBioLength {
		return NewValidationError("bio", "bio must be at most %d characters long", MaxBioLength)
	}

	if p.Gender.Set && !p.Gender.Null && p.Gender.Value != "" && !p.Gender.Value.Valid() {
		return NewValidationError("gender", "gender must be one of %q, %q or %q",
			models.GenderMale, models.GenderFemale, models.GenderRatherNotSay)
	}

	if p.HomepageURL.Set && p.HomepageURL.Value != "" {
		if err := v.validate.Var(p.HomepageURL.Value, "url"); err != nil {
			return NewValidationError("homepage_url", "homepage_url must be a valid URL")
		}
	}

	if p.Interests.Set && len(p.Interests.Value) > maxInterests {
		return NewValidationError("interests", "at most %d interests are allowed", maxInterests)
	}

	return nil
}

// validateBioUpdate requires the bio key to be present; an empty bio is valid.
func (v *RequestValidator) validateBioUpdate(b models.BioUpdate) error {
	if !b.Bio.Set {
		return NewValidationError("bio", "bio is required")
	}
	if utf8.RuneCountInString(b.Bio.Value) > MaxBioLength {
		return NewValidationError("bio", "bio must be at most %d characters long", MaxBioLength)
	}
	return nil
}
