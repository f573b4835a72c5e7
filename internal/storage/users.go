package storage

//go:generate mockgen -source=./users.go -destination=../../mocks/users.go -package=mocks

import (
	"context"

	"github.com/pribylovaa/cv-service/internal/models"
)

// UsersStorage описывает операции над профилями пользователей.
type UsersStorage interface {
	// CreateUser создаёт профиль или обновляет имя и email существующего.
	// CreatedAt и PhotoURL уже существующего профиля не меняются.
	CreateUser(ctx context.Context, profile models.UserProfile) error

	// UserByID возвращает профиль. Если записи нет - ErrNotFound.
	UserByID(ctx context.Context, userID string) (*models.UserProfile, error)

	// SetUserPhotoURL обновляет ссылку на фото. Если профиля нет - ErrNotFound.
	SetUserPhotoURL(ctx context.Context, userID, url string) error
}
