package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/coursehaven/backend/internal/config"
	"github.com/coursehaven/backend/internal/models"
)

// ImageStore keeps course artwork in a MinIO bucket. The object key plays the
// role of the image's public id; the URL is what course records hand to
// clients.
type ImageStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewImageStore(cfg config.Minio) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		log.Printf("created bucket %s", cfg.Bucket)
	}

	return &ImageStore{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		useSSL:   cfg.UseSSL,
	}, nil
}

// Upload writes an image object under a fresh key and returns the key/URL
// pair to embed in the course record.
func (s *ImageStore) Upload(ctx context.Context, data []byte, contentType string) (models.CourseImage, error) {
	ext := ".img"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	objectName := uuid.NewString() + ext

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return models.CourseImage{}, fmt.Errorf("minio put object: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return models.CourseImage{
		PublicID: objectName,
		URL:      fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName),
	}, nil
}

// Remove deletes a stored image by its public id.
func (s *ImageStore) Remove(ctx context.Context, publicID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio remove object: %w", err)
	}
	return nil
}
