// Package speech - распознавание речи для диктовки полей резюме.
// Session ведёт состояние одной записи поверх внешнего Recognizer.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pribylovaa/cv-service/pkg/log"
)

var (
	// ErrTranscription - нет разрешения, распознаватель недоступен или сбой движка.
	ErrTranscription = errors.New("transcription failed")
	// ErrUnavailable - распознаватель сейчас недоступен.
	ErrUnavailable = errors.New("recognizer unavailable")
)

// Permission - состояние разрешения на распознавание.
type Permission int

const (
	PermissionNotDetermined Permission = iota
	PermissionAuthorized
	PermissionDenied
	PermissionRestricted
)

func (p Permission) String() string {
	switch p {
	case PermissionAuthorized:
		return "authorized"
	case PermissionDenied:
		return "denied"
	case PermissionRestricted:
		return "restricted"
	default:
		return "not_determined"
	}
}

// Message - сообщение пользователю для неразрешённого состояния.
func (p Permission) Message() string {
	switch p {
	case PermissionAuthorized:
		return ""
	case PermissionDenied:
		return "Permesso negato per il riconoscimento vocale"
	case PermissionRestricted:
		return "Il riconoscimento vocale è limitato su questo dispositivo"
	case PermissionNotDetermined:
		return "Il riconoscimento vocale non è stato ancora autorizzato"
	default:
		return "Errore sconosciuto nell'autorizzazione"
	}
}

const (
	msgUnavailable = "Il riconoscimento vocale non è disponibile in questo momento"
	msgBusy        = "Registrazione già in corso"
	msgEngine      = "Errore nel riconoscimento vocale"
)

// Recognizer - внешняя возможность распознавания.
type Recognizer interface {
	// Authorize запрашивает разрешение. ErrUnavailable - распознаватель недоступен.
	Authorize(ctx context.Context) (Permission, error)
	// Recognize распознаёт аудио, передавая промежуточные результаты в onPartial
	// (каждый - полный текст на текущий момент), и возвращает итоговый текст.
	Recognize(ctx context.Context, audio io.Reader, mimeType string, onPartial func(string)) (string, error)
}

// State - снимок состояния сессии.
type State struct {
	Transcript   string
	Recording    bool
	Permission   Permission
	ErrorMessage string
}

// Session - одна сессия диктовки. Разрешение проверяется при первом Start
// и кэшируется после выдачи.
type Session struct {
	rec Recognizer

	mu    sync.Mutex
	state State
}

func NewSession(rec Recognizer) *Session {
	return &Session{rec: rec}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Reset очищает накопленный текст.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state.Transcript = ""
	s.mu.Unlock()
}

// Start распознаёт audio до финального результата или отмены ctx.
// Отмена - штатная остановка: возвращается текст, накопленный к этому моменту.
// Ошибки разрешения, доступности и движка - ErrTranscription с сообщением в State().ErrorMessage.
func (s *Session) Start(ctx context.Context, audio io.Reader, mimeType string, onPartial func(string)) (string, error) {
	const op = "speech/Session/Start"

	lg := log.From(ctx).With("op", op, "mime_type", mimeType)

	s.mu.Lock()
	if s.state.Recording {
		s.state.ErrorMessage = msgBusy
		s.mu.Unlock()
		return "", fmt.Errorf("%s: %w", op, ErrTranscription)
	}
	s.state.Recording = true
	granted := s.state.Permission == PermissionAuthorized
	s.mu.Unlock()

	if !granted {
		perm, err := s.rec.Authorize(ctx)
		if err != nil {
			lg.Warn("recognizer unavailable", "err", err)
			return "", s.stop(op, msgUnavailable, PermissionNotDetermined)
		}

		if perm != PermissionAuthorized {
			lg.Warn("speech permission not granted", "permission", perm.String())
			return "", s.stop(op, perm.Message(), perm)
		}

		s.mu.Lock()
		s.state.Permission = PermissionAuthorized
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.state.ErrorMessage = ""
	s.mu.Unlock()

	final, err := s.rec.Recognize(ctx, audio, mimeType, func(text string) {
		s.mu.Lock()
		s.state.Transcript = text
		s.mu.Unlock()

		if onPartial != nil {
			onPartial(text)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Recording = false

	if err != nil {
		if ctx.Err() != nil {
			lg.Info("recording stopped")
			return s.state.Transcript, nil
		}

		lg.Error("speech recognition failed", "err", err)
		s.state.ErrorMessage = fmt.Sprintf("%s: %v", msgEngine, err)
		return "", fmt.Errorf("%s: %w", op, ErrTranscription)
	}

	s.state.Transcript = final
	return final, nil
}

// stop завершает запись с ошибкой до начала распознавания.
func (s *Session) stop(op, msg string, perm Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Recording = false
	s.state.ErrorMessage = msg
	s.state.Permission = perm

	return fmt.Errorf("%s: %w", op, ErrTranscription)
}
