// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the subset of *s3.Client used by S3ImageStore.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore is an [ImageStore] backed by an S3 compatible bucket.
type S3ImageStore struct {
	client    objectPutter
	bucket    string
	publicURL string
}

// NewS3ImageStore builds the S3 client for cfg. Static credentials are used
// when both keys are set, the default AWS credential chain otherwise.
// It returns ErrImageStorageDisabled when no bucket is configured.
func NewS3ImageStore(ctx context.Context, cfg config.S3, log *logger.Logger) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, ErrImageStorageDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3ImageStore").Msg("failed to load AWS config")
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3ImageStore(client, cfg), nil
}

func newS3ImageStore(client objectPutter, cfg config.S3) *S3ImageStore {
	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}
}

// PutImage implements [ImageStore].
func (s *S3ImageStore) PutImage(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "S3ImageStore.PutImage").Str("key", key).Msg("failed to upload image")
		return "", fmt.Errorf("%w: %w", ErrUploadingImage, err)
	}

	return s.publicURL + "/" + key, nil
}
