// gcs реализует storage.PhotoStorage поверх Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"

	gstorage "cloud.google.com/go/storage"
	"github.com/pribylovaa/cv-service/internal/config"
	"github.com/pribylovaa/cv-service/internal/storage"
	"google.golang.org/api/option"
)

// PhotosStorage хранит фото в бакете GCS; объекты считаются публично читаемыми.
type PhotosStorage struct {
	bucket string
	client *gstorage.Client
}

// New создаёт клиент GCS. Пустой CredentialsFile - Application Default Credentials.
// Дополнительные опции позволяют подменить endpoint в тестах.
func New(ctx context.Context, cfg config.GCSConfig, opts ...option.ClientOption) (*PhotosStorage, error) {
	const op = "storage/gcs/New"

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s: empty bucket", op)
	}

	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PhotosStorage{bucket: cfg.Bucket, client: client}, nil
}

// UploadPhoto записывает объект profile_images/<uid>.jpg и возвращает его публичный URL.
func (s *PhotosStorage) UploadPhoto(ctx context.Context, userID string, r io.Reader, size int64) (string, error) {
	const op = "storage/gcs/UploadPhoto"

	if userID == "" || size <= 0 {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	key := storage.PhotoKey(userID)

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = storage.PhotoContentType
	// Фото небольшие: загружаем одним запросом.
	w.ChunkSize = 0

	if _, err := io.Copy(w, io.LimitReader(r, size)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%s: write: %w", op, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%s: close: %w", op, err)
	}

	return PublicURL(s.bucket, key), nil
}

func (s *PhotosStorage) Close() error {
	return s.client.Close()
}

// PublicURL строит публичную ссылку на объект.
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}

var _ storage.PhotoStorage = (*PhotosStorage)(nil)
