// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Optional is one field of a partial update. It distinguishes three cases:
//   - absent: Set == false, the field is left untouched;
//   - set: Set == true, Null == false, Value replaces the stored value;
//   - cleared: Set == true, Null == true, the stored value is reset.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Cleared returns an Optional that explicitly clears the field.
func Cleared[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON marks the field as present; a JSON null marks it cleared.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// ProfileUpdate is the self-service profile patch.
// Only fields with Set == true are written.
type ProfileUpdate struct {
	FirstName     Optional[string]     `json:"first_name"`
	LastName      Optional[string]     `json:"last_name"`
	Country       Optional[string]     `json:"country"`
	AgreedToTerms Optional[bool]       `json:"agreed_to_terms"`
	Bio           Optional[string]     `json:"bio"`
	Gender        Optional[Gender]     `json:"gender"`
	HomepageURL   Optional[string]     `json:"homepage_url"`
	Company       Optional[string]     `json:"company"`
	City          Optional[string]     `json:"city"`
	Interests     Optional[StringList] `json:"interests"`

	// ProfilePictureURL is filled by the server after an image upload.
	ProfilePictureURL Optional[string] `json:"-"`
}

// Empty reports whether the patch touches no field at all.
func (p ProfileUpdate) Empty() bool {
	return !p.FirstName.Set && !p.LastName.Set && !p.Country.Set &&
		!p.AgreedToTerms.Set && !p.Bio.Set && !p.Gender.Set &&
		!p.HomepageURL.Set && !p.Company.Set && !p.City.Set &&
		!p.Interests.Set && !p.ProfilePictureURL.Set
}

// Apply writes every present field of p onto u.
func (p ProfileUpdate) Apply(u *User) {
	applyString(&u.FirstName, p.FirstName)
	applyString(&u.LastName, p.LastName)
	applyString(&u.Country, p.Country)
	applyString(&u.Bio, p.Bio)
	applyString(&u.HomepageURL, p.HomepageURL)
	applyString(&u.Company, p.Company)
	applyString(&u.City, p.City)
	applyString(&u.ProfilePictureURL, p.ProfilePictureURL)

	if p.AgreedToTerms.Set {
		u.AgreedToTerms = p.AgreedToTerms.Value && !p.AgreedToTerms.Null
	}
	if p.Gender.Set {
		if p.Gender.Null || p.Gender.Value == "" {
			u.Gender = nil
		} else {
			g := p.Gender.Value
			u.Gender = &g
		}
	}
	if p.Interests.Set {
		if p.Interests.Null {
			u.Interests = StringList{}
		} else {
			u.Interests = p.Interests.Value
		}
	}
}

func applyString(dst *string, o Optional[string]) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = ""
		return
	}
	*dst = strings.TrimSpace(o.Value)
}

// StringList is a list of strings persisted as a JSON array.
type StringList []string

// ParseStringList accepts either a JSON array or a comma-separated string.
func ParseStringList(raw string) StringList {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return cleanList(list)
	}
	return cleanList(strings.Split(raw, ","))
}

func cleanList(in []string) StringList {
	out := make(StringList, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Value implements [driver.Valuer].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts a JSON array or a comma-separated string.
func (l *StringList) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		*l = ParseStringList(raw)
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = cleanList(list)
	return nil
}

// Scan implements [sql.Scanner].
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// ImageUpload is an uploaded image on its way to object storage.
type ImageUpload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}
