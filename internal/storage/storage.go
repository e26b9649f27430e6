// Package storage implements image hosting on S3-compatible object stores.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	appconfig "foodcourt/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, body io.Reader, contentType string) (string, error)
}

// S3Uploader implements Uploader on an S3 bucket. A custom endpoint makes it
// work against S3-compatible stores as well.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Uploader creates an uploader from configuration. Returns nil when
// uploads are disabled.
func NewS3Uploader(ctx context.Context, cfg appconfig.S3Config, logger zerolog.Logger) (*S3Uploader, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	logger = logger.With().Str("component", "s3-uploader").Logger()

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 uploader initialised")

	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

// Upload writes the image under a unique key and returns its public URL.
// The original filename only contributes its extension.
func (u *S3Uploader) Upload(ctx context.Context, folder, filename string, body io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to upload object")
		return "", fmt.Errorf("failed to upload object (bucket=%s, key=%s): %w", u.bucket, key, err)
	}

	u.logger.Info().Str("key", key).Msg("image uploaded")

	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}
