package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"architylez/internal/config"
	"architylez/internal/domain/models"
	storageerr "architylez/internal/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	defaultRegion = "us-east-1"
	// {public}/{bucket}/{base}.jpg: первая страница PDF, отрендеренная прокси изображений
	defaultPreviewTemplate = "{public}/{bucket}/{base}.jpg?page=1"
)

// MinioFileStorage хранит файлы в S3-совместимом бакете с публичным чтением.
type MinioFileStorage struct {
	client          *minio.Client
	bucket          string
	publicURL       string
	previewTemplate string
}

func NewMinioFileStorage(ctx context.Context, cfg config.MinioConfig) (*MinioFileStorage, error) {
	const op = "filestorage.NewMinioFileStorage"

	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%s: minio endpoint is not configured", op)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s: %w", op, storageerr.ErrBucketMissing)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: defaultRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to initialize minio client: %w", op, err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}

	previewTemplate := cfg.PreviewURLTemplate
	if previewTemplate == "" {
		previewTemplate = defaultPreviewTemplate
	}

	s := &MinioFileStorage{
		client:          client,
		bucket:          cfg.Bucket,
		publicURL:       strings.TrimRight(publicURL, "/"),
		previewTemplate: previewTemplate,
	}

	if err := s.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// EnsureBucket creates the bucket if it doesn't exist and opens it for anonymous reads.
func (s *MinioFileStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: defaultRegion}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if err := s.client.SetBucketPolicy(ctx, s.bucket, publicReadPolicy(s.bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

func (s *MinioFileStorage) Store(ctx context.Context, file File, folder string) (models.AssetRef, error) {
	const op = "filestorage.MinioFileStorage.Store"

	if file.Size() == 0 {
		return models.AssetRef{}, fmt.Errorf("%s: %w", op, storageerr.ErrEmptyFile)
	}

	key := path.Join(strings.Trim(folder, "/"), uuid.NewString()+strings.ToLower(filepath.Ext(file.Filename)))

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(file.Data), file.Size(), minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return models.AssetRef{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.AssetRef{
		URL:         s.ObjectURL(key),
		Identifier:  key,
		ContentType: file.ContentType,
		Size:        file.Size(),
	}, nil
}

func (s *MinioFileStorage) Delete(ctx context.Context, identifier string) error {
	const op = "filestorage.MinioFileStorage.Delete"

	if identifier == "" {
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, identifier, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DerivePreview строит URL превью первой страницы PDF по шаблону.
// Поддерживаемые плейсхолдеры: {public}, {bucket}, {key}, {base}.
func (s *MinioFileStorage) DerivePreview(_ context.Context, identifier string) (string, error) {
	if identifier == "" {
		return "", fmt.Errorf("filestorage.MinioFileStorage.DerivePreview: empty identifier")
	}

	base := strings.TrimSuffix(identifier, path.Ext(identifier))

	r := strings.NewReplacer(
		"{public}", s.publicURL,
		"{bucket}", s.bucket,
		"{key}", url.PathEscape(identifier),
		"{base}", base,
	)

	return r.Replace(s.previewTemplate), nil
}

func (s *MinioFileStorage) ObjectURL(key string) string {
	u, err := url.JoinPath(s.publicURL, s.bucket, key)
	if err != nil {
		return s.publicURL + "/" + s.bucket + "/" + key
	}
	return u
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}
	]
}`, bucket)
}
