package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/storage"
	"github.com/pribylovaa/cv-service/mocks"
	"github.com/stretchr/testify/require"
)

func newProfilesWithMocks(t *testing.T) (*Profiles, *mocks.MockUsersStorage, *mocks.MockPhotoStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mu := mocks.NewMockUsersStorage(ctrl)
	mp := mocks.NewMockPhotoStorage(ctrl)
	p := NewProfiles(mu, mp)
	p.now = func() time.Time { return t0 }
	return p, mu, mp
}

func TestProfiles_Register(t *testing.T) {
	p, mu, _ := newProfilesWithMocks(t)
	ctx := context.Background()

	want := &models.UserProfile{UserID: "u1", Name: "Anna", Email: "anna@example.com", CreatedAt: t0}
	mu.EXPECT().CreateUser(gomock.Any(), *want).Return(nil)
	mu.EXPECT().UserByID(gomock.Any(), "u1").Return(want, nil)

	got, err := p.Register(ctx, "u1", " Anna ", " anna@example.com ")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestProfiles_Register_Validation(t *testing.T) {
	p, _, _ := newProfilesWithMocks(t)

	_, err := p.Register(context.Background(), "", "Anna", "a@x.it")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.Register(context.Background(), "u1", "Anna", " ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestProfiles_Register_StorageError(t *testing.T) {
	p, mu, _ := newProfilesWithMocks(t)

	mu.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	_, err := p.Register(context.Background(), "u1", "Anna", "a@x.it")
	require.ErrorIs(t, err, ErrInternal)
}

func TestProfiles_Profile_NotFound(t *testing.T) {
	p, mu, _ := newProfilesWithMocks(t)

	mu.EXPECT().UserByID(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)

	_, err := p.Profile(context.Background(), "u1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfiles_UploadPhoto(t *testing.T) {
	p, mu, mp := newProfilesWithMocks(t)
	body := bytes.NewReader([]byte{0xFF, 0xD8, 0xFF})

	gomock.InOrder(
		mu.EXPECT().UserByID(gomock.Any(), "u1").Return(&models.UserProfile{UserID: "u1"}, nil),
		mp.EXPECT().UploadPhoto(gomock.Any(), "u1", body, int64(3)).Return("http://cdn/profile_images/u1.jpg", nil),
		mu.EXPECT().SetUserPhotoURL(gomock.Any(), "u1", "http://cdn/profile_images/u1.jpg").Return(nil),
	)

	url, err := p.UploadPhoto(context.Background(), "u1", body, 3)
	require.NoError(t, err)
	require.Equal(t, "http://cdn/profile_images/u1.jpg", url)
}

func TestProfiles_UploadPhoto_Errors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		p, _, _ := newProfilesWithMocks(t)

		_, err := p.UploadPhoto(context.Background(), "u1", bytes.NewReader(nil), 0)
		require.ErrorIs(t, err, ErrInvalidArgument)
		_, err = p.UploadPhoto(context.Background(), "", bytes.NewReader([]byte{1}), 1)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("blob store", func(t *testing.T) {
		p, mu, mp := newProfilesWithMocks(t)
		mu.EXPECT().UserByID(gomock.Any(), "u1").Return(&models.UserProfile{UserID: "u1"}, nil)
		mp.EXPECT().UploadPhoto(gomock.Any(), "u1", gomock.Any(), int64(1)).Return("", errors.New("s3 down"))

		_, err := p.UploadPhoto(context.Background(), "u1", bytes.NewReader([]byte{1}), 1)
		require.ErrorIs(t, err, ErrUpload)
	})

	t.Run("profile missing", func(t *testing.T) {
		p, mu, _ := newProfilesWithMocks(t)
		mu.EXPECT().UserByID(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)
		// UploadPhoto не ожидается: без профиля в bucket ничего не пишется.

		_, err := p.UploadPhoto(context.Background(), "u1", bytes.NewReader([]byte{1}), 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("profile removed during upload", func(t *testing.T) {
		p, mu, mp := newProfilesWithMocks(t)
		mu.EXPECT().UserByID(gomock.Any(), "u1").Return(&models.UserProfile{UserID: "u1"}, nil)
		mp.EXPECT().UploadPhoto(gomock.Any(), "u1", gomock.Any(), int64(1)).Return("http://x", nil)
		mu.EXPECT().SetUserPhotoURL(gomock.Any(), "u1", "http://x").Return(storage.ErrNotFound)

		_, err := p.UploadPhoto(context.Background(), "u1", bytes.NewReader([]byte{1}), 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("profile read failure", func(t *testing.T) {
		p, mu, _ := newProfilesWithMocks(t)
		mu.EXPECT().UserByID(gomock.Any(), "u1").Return(nil, errors.New("mongo down"))

		_, err := p.UploadPhoto(context.Background(), "u1", bytes.NewReader([]byte{1}), 1)
		require.ErrorIs(t, err, ErrInternal)
	})
}
