package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pribylovaa/cv-service/internal/completion"
	"github.com/pribylovaa/cv-service/internal/identity"
	"github.com/pribylovaa/cv-service/internal/service"
	"github.com/pribylovaa/cv-service/internal/speech"
	apierrors "github.com/pribylovaa/cv-service/internal/transport/http/errors"
)

// Deps - зависимости хендлеров.
type Deps struct {
	Sessions   *service.Sessions
	Profiles   *service.Profiles
	Improver   completion.Improver
	Recognizer speech.Recognizer
	// MaxPhotoBytes - предел тела PUT /users/me/photo.
	MaxPhotoBytes int64
}

// Handlers агрегирует зависимости и валидатор DTO.
type Handlers struct {
	Deps
	validate *validator.Validate
}

func New(d Deps) *Handlers {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{Deps: d, validate: v}
}

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict - строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// bind декодирует и валидирует тело; любая ошибка - invalid argument.
func (h *Handlers) bind(r *http.Request, value any) error {
	const op = "transport/http/handlers/bind"

	if err := decodeStrict(r, value); err != nil {
		return fmt.Errorf("%s: decode: %w", op, service.ErrInvalidArgument)
	}

	if err := h.validate.Struct(value); err != nil {
		return fmt.Errorf("%s: %s: %w", op, err.Error(), service.ErrInvalidArgument)
	}

	return nil
}

// caller - личность, положенная мидлваром Authenticate.
func caller(r *http.Request) (identity.Identity, error) {
	id, ok := identity.From(r.Context())
	if !ok || id.UserID == "" {
		return identity.Identity{}, apierrors.ErrUnauthenticated
	}

	return id, nil
}

// editor - редактор резюме вызывающего; резюме к этому моменту загружено.
func (h *Handlers) editor(w http.ResponseWriter, r *http.Request) (*service.Editor, bool) {
	id, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return nil, false
	}

	e, err := h.Sessions.Editor(r.Context(), id.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return nil, false
	}

	return e, true
}
