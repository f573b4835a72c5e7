package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/storage"
	"github.com/pribylovaa/cv-service/pkg/log"
	"github.com/pribylovaa/cv-service/pkg/redact"
)

// Profiles - профили пользователей и их фото.
type Profiles struct {
	users  storage.UsersStorage
	photos storage.PhotoStorage
	now    func() time.Time
}

// NewProfiles создаёт сервис профилей.
func NewProfiles(users storage.UsersStorage, photos storage.PhotoStorage) *Profiles {
	return &Profiles{users: users, photos: photos, now: time.Now}
}

// Register создаёт профиль users/<uid> (или обновляет имя и email существующего)
// и возвращает сохранённую версию.
//
// Валидация: userID и email обязательны (после TrimSpace).
func (p *Profiles) Register(ctx context.Context, userID, name, email string) (*models.UserProfile, error) {
	const op = "service/profiles/Register"

	lg := log.From(ctx).With("op", op, "user_id", userID)

	userID = strings.TrimSpace(userID)
	email = strings.TrimSpace(email)
	if userID == "" || email == "" {
		lg.Warn("invalid argument: empty user_id or email")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	err := p.users.CreateUser(ctx, models.UserProfile{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: p.now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		lg.Error("create user failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	lg.Info("user registered", "email", redact.Email(email))
	return p.Profile(ctx, userID)
}

// Profile возвращает профиль; ErrNotFound, если его нет.
func (p *Profiles) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	const op = "service/profiles/Profile"

	lg := log.From(ctx).With("op", op, "user_id", userID)

	if strings.TrimSpace(userID) == "" {
		lg.Warn("invalid argument: empty user_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	profile, err := p.users.UserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			lg.Error("user read failed", "err", err)
		}

		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return profile, nil
}

// UploadPhoto сохраняет JPEG пользователя по ключу profile_images/<uid>.jpg
// и записывает полученный URL в профиль. Резюме при этом не меняется.
// Профиль проверяется до записи в blob-хранилище: без профиля файл не создаётся.
//
// Ошибки: ErrInvalidArgument (пустой uid/размер), ErrUpload (blob-хранилище),
// ErrNotFound (профиля нет), ErrInternal.
func (p *Profiles) UploadPhoto(ctx context.Context, userID string, r io.Reader, size int64) (string, error) {
	const op = "service/profiles/UploadPhoto"

	lg := log.From(ctx).With("op", op, "user_id", userID, "size", size)

	if strings.TrimSpace(userID) == "" || r == nil || size <= 0 {
		lg.Warn("invalid argument")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := p.users.UserByID(ctx, userID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			lg.Error("user read failed", "err", err)
		} else {
			lg.Warn("photo upload without profile")
		}

		return "", fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	url, err := p.photos.UploadPhoto(ctx, userID, r, size)
	if err != nil {
		lg.Error("photo upload failed", "err", err)
		if errors.Is(err, storage.ErrInvalidArgument) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		return "", fmt.Errorf("%s: %w", op, ErrUpload)
	}

	if err := p.users.SetUserPhotoURL(ctx, userID, url); err != nil {
		lg.Error("photo url update failed", "err", err)
		return "", fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	lg.Info("photo uploaded")
	return url, nil
}

// mapStorageErr переводит ошибки хранилища в ошибки сервиса.
func mapStorageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrInvalidArgument):
		return ErrInvalidArgument
	default:
		return ErrInternal
	}
}
