package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/abdulrafay-07/slack/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store keeps message attachments in an S3-compatible bucket. Messages hold
// only the returned key; content is served through presigned URLs.
type Store struct {
	client *minio.Client
	bucket string
}

func New(cfg *config.Config) (*Store, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}

	s := &Store{client: client, bucket: cfg.S3Bucket}

	// Ensure the bucket exists (idempotent on restart).
	ctx := context.Background()
	err = client.MakeBucket(ctx, cfg.S3Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errExists := client.BucketExists(ctx, cfg.S3Bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("creating bucket %q: %w", cfg.S3Bucket, err)
		}
	}

	return s, nil
}

// Upload stores the object under a fresh key and returns the key.
func (s *Store) Upload(ctx context.Context, filename, contentType string, reader io.Reader, size int64) (string, error) {
	key := uuid.NewString() + path.Ext(filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading object: %w", err)
	}

	return key, nil
}

// PresignedURL returns a short-lived download URL for a stored key.
func (s *Store) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presigning object: %w", err)
	}
	return u.String(), nil
}
