// minio реализует storage.PhotoStorage на базе MinIO/S3.
// minio.go - конструктор клиента: нормализует endpoint, настраивает Secure/creds
// и проверяет наличие бакета.
// photos.go - загрузка фото профиля и выдача URL для чтения.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/cv-service/internal/config"
	"github.com/pribylovaa/cv-service/internal/storage"
)

// PhotosStorage - адаптер MinIO для фото профилей.
type PhotosStorage struct {
	cfg    config.S3Config
	client *mclient.Client
}

// New создаёт клиент MinIO и выполняет fail-fast-проверку бакета.
func New(ctx context.Context, cfg config.S3Config) (*PhotosStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &PhotosStorage{cfg: cfg, client: client}, nil
}

var _ storage.PhotoStorage = (*PhotosStorage)(nil)
