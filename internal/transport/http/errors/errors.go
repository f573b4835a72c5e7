// errors стандартизирует ответы об ошибках HTTP-слоя cv-service.
// На вход он принимает ошибку сервисного слоя (sentinel-ошибки service,
// identity, completion, speech), а на выход даёт:
//   - корректный HTTP-статус;
//   - короткий стабильный код и безопасное сообщение для пользователя.
//
// Подробности сбоя остаются в логах и в состоянии редактора.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/cv-service/internal/completion"
	"github.com/pribylovaa/cv-service/internal/identity"
	"github.com/pribylovaa/cv-service/internal/service"
	"github.com/pribylovaa/cv-service/internal/speech"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// ErrUnauthenticated - запрос без действительного Bearer-токена.
var ErrUnauthenticated = stderrors.New("unauthenticated")

// ErrPayloadTooLarge - тело запроса больше допустимого.
var ErrPayloadTooLarge = stderrors.New("payload too large")

// APIError - единый формат для фронта.
// Code - короткий стабильный код для машиночитаемой обработки на FE.
// Message - безопасное человекочитаемое описание.
// RequestID - прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse - корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// messageError подменяет сообщение по умолчанию, сохраняя маппинг статуса.
type messageError struct {
	err error
	msg string
}

func (e *messageError) Error() string { return e.err.Error() }
func (e *messageError) Unwrap() error { return e.err }

// WithMessage прикрепляет к err пользовательское сообщение.
// Пустой msg оставляет сообщение из таблицы.
func WithMessage(err error, msg string) error {
	if err == nil || msg == "" {
		return err
	}

	return &messageError{err: err, msg: msg}
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - известная sentinel-ошибка в цепочке - маппим через baseFromErr().
//   - прочее - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "Errore interno",
			},
		}
	}

	httpStatus, code, msg := baseFromErr(err)

	var me *messageError
	if stderrors.As(err, &me) {
		msg = me.msg
	}

	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError - хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromErr - базовый маппинг ошибка -> HTTP/FE-код/сообщение:
//   - InvalidArgument (битый JSON, валидация, пустой uid, не JPEG) -> 400
//   - Unauthenticated (нет/просрочен/битый токен) -> 401
//   - NotFound (нет профиля) -> 404
//   - PayloadTooLarge -> 413
//   - NotLoaded (мутация до загрузки резюме) -> 409
//   - Load/Save/Upload (хранилища недоступны) -> 503
//   - Completion/Transcription (внешние AI-движки) -> 502
//   - Canceled -> 499, DeadlineExceeded -> 504
//   - прочее -> 500/internal
func baseFromErr(err error) (int, string, string) {
	switch {
	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "Richiesta non valida"
	case stderrors.Is(err, ErrUnauthenticated),
		stderrors.Is(err, identity.ErrInvalidToken),
		stderrors.Is(err, identity.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthenticated", "Autenticazione richiesta"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "Non trovato"
	case stderrors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large", "File troppo grande"
	case stderrors.Is(err, service.ErrNotLoaded):
		return http.StatusConflict, "not_loaded", "Il CV non è stato caricato"
	case stderrors.Is(err, service.ErrLoad):
		return http.StatusServiceUnavailable, "load_failed", "Errore nel caricamento"
	case stderrors.Is(err, service.ErrSave):
		return http.StatusServiceUnavailable, "save_failed", "Errore nel salvataggio"
	case stderrors.Is(err, service.ErrUpload):
		return http.StatusServiceUnavailable, "upload_failed", "Errore nel caricamento dell'immagine"
	case stderrors.Is(err, completion.ErrCompletion):
		return http.StatusBadGateway, "completion_failed", "Impossibile migliorare il testo"
	case stderrors.Is(err, speech.ErrTranscription):
		return http.StatusBadGateway, "transcription_failed", "Errore nel riconoscimento vocale"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "Richiesta annullata"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "Tempo scaduto"
	default:
		return http.StatusInternalServerError, "internal", "Errore interno"
	}
}
