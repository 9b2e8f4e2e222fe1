// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3ImageStore_PutImage(t *testing.T) {
	putter := &fakePutter{}
	store := newS3ImageStore(putter, config.S3{Bucket: "blog", Region: "eu-west-1", PublicURL: "https://cdn.example.com/"})

	url, err := store.PutImage(context.Background(), "profile-images/u-1/a.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/profile-images/u-1/a.png", url)
	require.NotNil(t, putter.input)
	assert.Equal(t, "blog", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "profile-images/u-1/a.png", aws.ToString(putter.input.Key))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(putter.input.ContentLength))
}

func TestS3ImageStore_DefaultPublicURL(t *testing.T) {
	store := newS3ImageStore(&fakePutter{}, config.S3{Bucket: "blog", Region: "eu-west-1"})

	url, err := store.PutImage(context.Background(), "k.jpg", strings.NewReader("x"), 1, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://blog.s3.eu-west-1.amazonaws.com/k.jpg", url)
}

func TestS3ImageStore_PutError(t *testing.T) {
	store := newS3ImageStore(&fakePutter{err: errors.New("denied")}, config.S3{Bucket: "blog"})

	_, err := store.PutImage(context.Background(), "k", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, ErrUploadingImage)
}

func TestNewS3ImageStore_Disabled(t *testing.T) {
	_, err := NewS3ImageStore(context.Background(), config.S3{}, logger.Nop())
	assert.ErrorIs(t, err, ErrImageStorageDisabled)
}
