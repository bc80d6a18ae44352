// Package storage provides the MinIO object store adapter used for document
// files and student photos.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"kurscrm_backend/platform/config"
	"kurscrm_backend/platform/logger"
)

// Service wraps the MinIO client with the two application buckets.
type Service struct {
	client          *minio.Client
	bucketDocuments string
	bucketPhotos    string
	maxFileSize     int64
	logger          *logger.Logger
}

func New(cfg config.MinIOConfig, log *logger.Logger) (*Service, error) {
	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Service{
		client:          client,
		bucketDocuments: cfg.GetMinioBucketDocuments(),
		bucketPhotos:    cfg.GetMinioBucketStudentPhotos(),
		maxFileSize:     cfg.GetMinIOMaxFileSize(),
		logger:          log,
	}, nil
}

// EnsureBuckets creates the application buckets if they do not exist.
// Called once at startup.
func (s *Service) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.bucketDocuments, s.bucketPhotos} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("check bucket %s: %w", bucket, err)
		}
		if exists {
			continue
		}
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		s.logger.Info("bucket created", "bucket", bucket)
	}
	return nil
}

// MaxFileSize returns the configured upload size limit in bytes.
func (s *Service) MaxFileSize() int64 { return s.maxFileSize }

// NewDocumentKey builds a collision-free object key for a document file.
func (s *Service) NewDocumentKey(fileName string) string {
	return fmt.Sprintf("documents/%s/%s", uuid.NewString(), fileName)
}

// NewPhotoKey builds a collision-free object key for a student photo.
func (s *Service) NewPhotoKey(personID uuid.UUID, fileName string) string {
	return fmt.Sprintf("photos/%s/%s", personID, fileName)
}

// PresignDocumentUpload returns a short-lived URL the client PUTs the file to.
func (s *Service) PresignDocumentUpload(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucketDocuments, key, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}
	return u.String(), nil
}

// PresignDocumentDownload returns a short-lived GET URL that forces a
// download with the original file name.
func (s *Service) PresignDocumentDownload(ctx context.Context, key, fileName string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	u, err := s.client.PresignedGetObject(ctx, s.bucketDocuments, key, 15*time.Minute, params)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u.String(), nil
}

// PresignPhotoUpload returns a short-lived PUT URL for a student photo.
func (s *Service) PresignPhotoUpload(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucketPhotos, key, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("presign photo upload: %w", err)
	}
	return u.String(), nil
}

// RemoveDocument deletes the object behind a document record.
func (s *Service) RemoveDocument(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketDocuments, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// RemovePhoto deletes a student photo object.
func (s *Service) RemovePhoto(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketPhotos, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}
