package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageStore persists citizen photos and returns a display URL
type ImageStore interface {
	SaveImage(ctx context.Context, data []byte, contentType string) (string, error)
}

// S3Config holds settings for an S3-compatible object store (AWS or MinIO)
type S3Config struct {
	Region        string
	Endpoint      string // empty for AWS proper
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// S3ImageStore stores images in a bucket under the citizens/ prefix
type S3ImageStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3ImageStore creates an ImageStore backed by S3
func NewS3ImageStore(ctx context.Context, cfg S3Config) (*S3ImageStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO-style endpoints
		}
	})

	return &S3ImageStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// SaveImage uploads the image bytes under a random key and returns its
// public URL.
func (s *S3ImageStore) SaveImage(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("citizens/%s%s", uuid.NewString(), extensionFor(contentType))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
