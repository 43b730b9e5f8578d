package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/tracing"
	"github.com/vidtube/backend/pkg/models"
)

// Storage stores uploaded media in an S3-compatible object store.
type Storage struct {
	client     *minio.Client
	bucketName string
	baseURL    string
}

// New creates a new storage client and ensures the bucket exists.
func New(cfg config.StorageConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{
		client:     client,
		bucketName: cfg.BucketName,
		baseURL:    publicBaseURL(cfg),
	}, nil
}

// Store uploads a local file under a fresh object key and returns the
// resulting reference. The key embeds a UUID so repeated uploads of the
// same filename never collide.
func (s *Storage) Store(ctx context.Context, localPath, prefix string) (models.MediaRef, error) {
	span, ctx := tracing.StartSpan(ctx, "storage.Store")
	defer span.Finish()

	key := ObjectKey(prefix, localPath)
	span.SetTag("object.key", key)

	_, err := s.client.FPutObject(ctx, s.bucketName, key, localPath, minio.PutObjectOptions{
		ContentType: ContentType(localPath),
	})
	if err != nil {
		tracing.LogError(span, err)
		return models.MediaRef{}, fmt.Errorf("failed to upload file: %w", err)
	}

	return models.MediaRef{
		URL: s.baseURL + "/" + key,
		Key: key,
	}, nil
}

// Remove deletes a previously stored object.
func (s *Storage) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectKey builds the storage key for an uploaded file.
func ObjectKey(prefix, localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return prefix + "/" + uuid.New().String() + ext
}

func publicBaseURL(cfg config.StorageConfig) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.BucketName)
}

// ContentType returns the content type based on file extension
func ContentType(localPath string) string {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
