package storage

//go:generate mockgen -source=./photos.go -destination=../../mocks/photos.go -package=mocks

import (
	"context"
	"io"
)

// PhotoContentType - единственный поддерживаемый формат фото профиля.
const PhotoContentType = "image/jpeg"

// PhotoStorage - blob-хранилище фото профилей.
// Каждому пользователю соответствует один объект с детерминированным ключом
// (см. PhotoKey); повторная загрузка перезаписывает его.
type PhotoStorage interface {
	// UploadPhoto записывает JPEG размера size и возвращает URL для чтения.
	UploadPhoto(ctx context.Context, userID string, r io.Reader, size int64) (string, error)
}

// PhotoKey возвращает ключ объекта фото пользователя.
func PhotoKey(userID string) string {
	return "profile_images/" + userID + ".jpg"
}
