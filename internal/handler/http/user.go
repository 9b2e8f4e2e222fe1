// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/sosumi-blog/internal/app"
	"github.com/MKhiriev/sosumi-blog/internal/service"
	"github.com/MKhiriev/sosumi-blog/internal/utils"
	"github.com/MKhiriev/sosumi-blog/models"
)

const (
	profileImageField = "profilePicture"

	// maxMultipartBytes leaves room for the text fields next to the image.
	maxMultipartBytes = service.MaxImageSize + 1<<20
)

// getUser returns the caller. The soft gate applies: an incomplete profile
// is reported, not rejected.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	user, err := h.services.ProfileService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeUser(w, user, "", http.StatusOK)
}

// updateProfile accepts either a JSON patch or the multipart form of the
// profile page, which may also carry a new profile picture.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	var (
		update   models.ProfileUpdate
		image    models.ImageUpload
		hasImage bool
	)
	if isMultipart(r) {
		values, err := parseMultipart(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		update = profileUpdateFromForm(values)

		if image, hasImage, err = imageFromForm(r); err != nil {
			writeError(w, r, err)
			return
		}
	} else if err := utils.DecodeJSON(w, r, &update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}

	if err := h.validator.Validate(ctx, update); err != nil {
		writeError(w, r, err)
		return
	}

	if hasImage {
		if _, err := h.services.ProfileService.UploadProfileImage(ctx, userID, image); err != nil {
			writeError(w, r, err)
			return
		}
	}

	user, err := h.services.ProfileService.UpdateProfile(ctx, userID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeUser(w, user, app.MsgProfileUpdated, http.StatusOK)
}

func (h *Handler) updateBio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	var update models.BioUpdate
	if err := h.decode(w, r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.ProfileService.UpdateBio(ctx, userID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeUser(w, user, app.MsgBioUpdated, http.StatusOK)
}

func (h *Handler) uploadProfileImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	if !isMultipart(r) {
		writeError(w, r, ErrMissingImage)
		return
	}
	if _, err := parseMultipart(w, r); err != nil {
		writeError(w, r, err)
		return
	}

	image, ok, err := imageFromForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, ErrMissingImage)
		return
	}

	user, err := h.services.ProfileService.UploadProfileImage(ctx, userID, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeUser(w, user, app.MsgImageUploaded, http.StatusOK)
}

func (h *Handler) listMyPosts(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	posts, err := h.services.PostService.ListByAuthor(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, posts, http.StatusOK)
}

func writeUser(w http.ResponseWriter, user models.User, message string, status int) {
	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: message,
		Data:    models.NewUserResponse(user),
	}, status)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart parses the multipart body of r and returns its text values.
func parseMultipart(w http.ResponseWriter, r *http.Request) (map[string][]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBytes)
	if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return r.MultipartForm.Value, nil
}

// imageFromForm returns the profile picture part of a parsed multipart
// request. ok is false when the part is absent or empty. The content type
// is sniffed from the bytes, the client supplied header is ignored.
func imageFromForm(r *http.Request) (models.ImageUpload, bool, error) {
	file, _, err := r.FormFile(profileImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return models.ImageUpload{}, false, nil
	}
	if err != nil {
		return models.ImageUpload{}, false, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	defer file.Close()

	// one byte over the cap is enough for the size check to fail
	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		return models.ImageUpload{}, false, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	if len(data) == 0 {
		return models.ImageUpload{}, false, nil
	}

	return models.ImageUpload{
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: http.DetectContentType(data),
	}, true, nil
}

// Multipart field names of the profile page.
const (
	formFirstName     = "firstName"
	formLastName      = "lastName"
	formCountry       = "country"
	formAgreedToTerms = "agreedToTerms"
	formBio           = "bio"
	formGender        = "gender"
	formHomepageURL   = "homepageUrl"
	formCompany       = "company"
	formCity          = "city"
	formInterests     = "interests"
)

// profileUpdateFromForm builds a patch from form values. Only fields sent
// in the form are set. An empty gender clears it.
func profileUpdateFromForm(values map[string][]string) models.ProfileUpdate {
	get := func(name string) (string, bool) {
		v, ok := values[name]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	}
	str := func(name string) models.Optional[string] {
		if v, ok := get(name); ok {
			return models.Some(v)
		}
		return models.Optional[string]{}
	}

	update := models.ProfileUpdate{
		FirstName:   str(formFirstName),
		LastName:    str(formLastName),
		Country:     str(formCountry),
		Bio:         str(formBio),
		HomepageURL: str(formHomepageURL),
		Company:     str(formCompany),
		City:        str(formCity),
	}

	if v, ok := get(formAgreedToTerms); ok {
		agreed, _ := strconv.ParseBool(strings.TrimSpace(v))
		update.AgreedToTerms = models.Some(agreed)
	}
	if v, ok := get(formGender); ok {
		if strings.TrimSpace(v) == "" {
			update.Gender = models.Cleared[models.Gender]()
		} else {
			update.Gender = models.Some(models.Gender(v))
		}
	}
	if v, ok := get(formInterests); ok {
		update.Interests = models.Some(models.ParseStringList(v))
	}

	return update
}
