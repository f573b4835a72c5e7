package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/cv-service/internal/storage"
)

// UploadPhoto кладёт JPEG по ключу profile_images/<uid>.jpg (перезаписывая прежний).
// Если PublicBaseURL задан - возвращается <base>/<key>, иначе presigned GET на PresignTTL.
func (s *PhotosStorage) UploadPhoto(ctx context.Context, userID string, r io.Reader, size int64) (string, error) {
	const op = "storage/minio/UploadPhoto"

	if userID == "" || size <= 0 {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	key := storage.PhotoKey(userID)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, size, mclient.PutObjectOptions{
		ContentType: storage.PhotoContentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key, nil
	}

	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL, nil)
	if err != nil {
		return "", fmt.Errorf("%s: presign: %w", op, err)
	}

	return u.String(), nil
}
