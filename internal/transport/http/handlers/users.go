package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pribylovaa/cv-service/internal/service"
	"github.com/pribylovaa/cv-service/internal/storage"
	apierrors "github.com/pribylovaa/cv-service/internal/transport/http/errors"
)

const defaultMaxPhotoBytes = 5 << 20

// RegisterMe создаёт профиль вызывающего. Пустой email берётся из токена.
func (h *Handlers) RegisterMe(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in registerRequest
	if err := h.bind(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	email := in.Email
	if email == "" {
		email = id.Email
	}

	p, err := h.Profiles.Register(r.Context(), id.UserID, in.Name, email)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.Profiles.Profile(r.Context(), id.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// UploadPhoto принимает JPEG телом запроса и возвращает публичный URL.
func (h *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	const op = "transport/http/handlers/UploadPhoto"

	id, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	limit := h.MaxPhotoBytes
	if limit <= 0 {
		limit = defaultMaxPhotoBytes
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			apierrors.WriteError(w, r, fmt.Errorf("%s: %w", op, apierrors.ErrPayloadTooLarge))
			return
		}

		apierrors.WriteError(w, r, fmt.Errorf("%s: read body: %w", op, service.ErrInvalidArgument))
		return
	}

	if len(data) == 0 || http.DetectContentType(data) != storage.PhotoContentType {
		apierrors.WriteError(w, r, fmt.Errorf("%s: not a jpeg: %w", op, service.ErrInvalidArgument))
		return
	}

	url, err := h.Profiles.UploadPhoto(r.Context(), id.UserID, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, photoResponse{PhotoURL: url})
}
