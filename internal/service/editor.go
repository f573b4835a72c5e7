package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pribylovaa/cv-service/internal/events"
	"github.com/pribylovaa/cv-service/internal/metrics"
	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/storage"
	"github.com/pribylovaa/cv-service/pkg/log"
)

// Editor - резюме одного пользователя в памяти и протокол его синхронизации с хранилищем.
//
// Жизненный цикл: не загружено -> загружено -> (изменено -> сохранено)*.
// Каждая мутация меняет агрегат в памяти и сразу сохраняет документ целиком.
// Если сохранение не удалось, изменённый агрегат остаётся в памяти,
// а ошибка видна через State().ErrorMessage.
//
// Операции сериализуются мьютексом, но это защищает только память процесса:
// в хранилище по-прежнему выигрывает последний писатель.
type Editor struct {
	cvs storage.CVStorage
	pub events.Publisher
	now func() time.Time

	// mu сериализует операции редактора, включая обращения к хранилищу.
	mu sync.Mutex

	stateMu sync.Mutex
	state   State
	subs    map[uint64]func(State)
	nextSub uint64
}

// EditorOption настраивает Editor.
type EditorOption func(*Editor)

// WithPublisher задаёт получателя событий об успешных сохранениях.
func WithPublisher(p events.Publisher) EditorOption {
	return func(e *Editor) {
		if p != nil {
			e.pub = p
		}
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEditor создаёт незагруженный редактор.
func NewEditor(cvs storage.CVStorage, opts ...EditorOption) *Editor {
	e := &Editor{
		cvs:  cvs,
		pub:  events.Noop{},
		now:  time.Now,
		subs: make(map[uint64]func(State)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State возвращает снимок состояния.
func (e *Editor) State() State {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	return e.state.clone()
}

// Subscribe регистрирует слушателя, вызываемого после каждого изменения состояния.
// Слушатель вызывается синхронно вне блокировок и не должен вызывать мутирующие методы редактора.
func (e *Editor) Subscribe(fn func(State)) (cancel func()) {
	e.stateMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.stateMu.Unlock()

	return func() {
		e.stateMu.Lock()
		delete(e.subs, id)
		e.stateMu.Unlock()
	}
}

// Load загружает резюме пользователя.
// Нет записи - создаётся пустое резюме и сразу сохраняется (Create), его id принимается.
// Ошибка выборки/декодирования - ErrLoad, ошибка создания - ErrSave;
// в обоих случаях агрегат сбрасывается, повторов нет.
func (e *Editor) Load(ctx context.Context, userID string) (*models.CV, error) {
	const op = "service/editor/Load"

	lg := log.From(ctx).With("op", op, "user_id", userID)

	if strings.TrimSpace(userID) == "" {
		lg.Warn("invalid argument: empty user_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.load(ctx, lg, userID)
}

// EnsureLoaded возвращает текущее резюме, если оно уже загружено для userID, иначе выполняет Load.
func (e *Editor) EnsureLoaded(ctx context.Context, userID string) (*models.CV, error) {
	const op = "service/editor/EnsureLoaded"

	lg := log.From(ctx).With("op", op, "user_id", userID)

	if strings.TrimSpace(userID) == "" {
		lg.Warn("invalid argument: empty user_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if cur, ok := e.current(); ok && cur.UserID == userID {
		return &cur, nil
	}

	return e.load(ctx, lg, userID)
}

func (e *Editor) load(ctx context.Context, lg *slog.Logger, userID string) (*models.CV, error) {
	const op = "service/editor/load"

	e.update(func(s *State) {
		s.Loading = true
		s.ErrorMessage = ""
	})

	cv, err := e.cvs.CVByUserID(ctx, userID)
	switch {
	case err == nil:
		e.update(func(s *State) {
			s.Loading = false
			s.CV = cv
		})

		out := cv.Clone()
		return &out, nil

	case errors.Is(err, storage.ErrNotFound):
		return e.createEmpty(ctx, lg, userID)

	case errors.Is(err, storage.ErrDecode):
		lg.Error("cv decode failed", "err", err)
		e.fail(fmt.Sprintf("%s: %v", msgDecode, err))

	default:
		lg.Error("cv load failed", "err", err)
		e.fail(fmt.Sprintf("%s: %v", msgLoad, err))
	}

	return nil, fmt.Errorf("%s: %w", op, ErrLoad)
}

func (e *Editor) createEmpty(ctx context.Context, lg *slog.Logger, userID string) (*models.CV, error) {
	const op = "service/editor/createEmpty"

	cv := models.NewCV(userID, e.stamp())

	id, err := e.cvs.CreateCV(ctx, cv)
	metrics.CVSaves.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		lg.Error("empty cv create failed", "err", err)
		e.fail(fmt.Sprintf("%s: %v", msgCreate, err))
		return nil, fmt.Errorf("%s: %w", op, ErrSave)
	}

	cv.ID = id
	lg.Info("empty cv created", "cv_id", id)

	e.update(func(s *State) {
		s.Loading = false
		c := cv
		s.CV = &c
	})
	e.publish(ctx, lg, cv)

	out := cv.Clone()
	return &out, nil
}

// Save сохраняет текущий агрегат целиком.
// Пустой id - Create с принятием назначенного id, иначе перезапись по id.
// Перед отправкой UpdatedAt выставляется в текущее время.
// Ошибка - ErrSave, агрегат в памяти не меняется.
func (e *Editor) Save(ctx context.Context) (*models.CV, error) {
	const op = "service/editor/Save"

	lg := log.From(ctx).With("op", op)

	e.mu.Lock()
	defer e.mu.Unlock()

	cur, ok := e.current()
	if !ok {
		lg.Warn("cv not loaded")
		return nil, fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}

	return e.save(ctx, lg.With("user_id", cur.UserID, "cv_id", cur.ID), cur)
}

func (e *Editor) save(ctx context.Context, lg *slog.Logger, cv models.CV) (*models.CV, error) {
	const op = "service/editor/save"

	cv.UpdatedAt = e.stamp()

	e.update(func(s *State) {
		s.Loading = true
		s.ErrorMessage = ""
	})

	var err error
	if cv.ID == "" {
		var id string
		if id, err = e.cvs.CreateCV(ctx, cv); err == nil {
			cv.ID = id
		}
	} else {
		err = e.cvs.ReplaceCV(ctx, cv)
	}

	metrics.CVSaves.WithLabelValues(metrics.Result(err)).Inc()

	if err != nil {
		lg.Error("cv save failed", "err", err)
		e.update(func(s *State) {
			s.Loading = false
			s.ErrorMessage = fmt.Sprintf("%s: %v", msgSave, err)
		})

		return nil, fmt.Errorf("%s: %w", op, ErrSave)
	}

	e.update(func(s *State) {
		s.Loading = false
		c := cv
		s.CV = &c
	})
	e.publish(ctx, lg, cv)

	out := cv.Clone()
	return &out, nil
}

// mutate применяет fn к копии агрегата; fn возвращает false, если изменений нет
// (тогда сохранения не происходит). Иначе копия становится текущим агрегатом и сохраняется.
func (e *Editor) mutate(ctx context.Context, op string, fn func(cv *models.CV) bool) (*models.CV, error) {
	lg := log.From(ctx).With("op", op)

	e.mu.Lock()
	defer e.mu.Unlock()

	cur, ok := e.current()
	if !ok {
		lg.Warn("cv not loaded")
		return nil, fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}

	lg = lg.With("user_id", cur.UserID, "cv_id", cur.ID)

	if !fn(&cur) {
		lg.Debug("no-op mutation")
		return &cur, nil
	}

	e.update(func(s *State) {
		c := cur
		s.CV = &c
	})

	saved, err := e.save(ctx, lg, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

// NextStep переходит к следующему шагу мастера (не дальше LastStep).
func (e *Editor) NextStep() int {
	var step int
	e.update(func(s *State) {
		if s.Step < LastStep {
			s.Step++
		}
		step = s.Step
	})

	return step
}

// PrevStep возвращается к предыдущему шагу (не раньше 0).
func (e *Editor) PrevStep() int {
	var step int
	e.update(func(s *State) {
		if s.Step > 0 {
			s.Step--
		}
		step = s.Step
	})

	return step
}

func (e *Editor) SetEditMode(on bool) {
	e.update(func(s *State) { s.EditMode = on })
}

// current возвращает глубокую копию текущего агрегата.
func (e *Editor) current() (models.CV, bool) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	if e.state.CV == nil {
		return models.CV{}, false
	}

	return e.state.CV.Clone(), true
}

// update изменяет состояние и оповещает подписчиков вне блокировки.
func (e *Editor) update(fn func(s *State)) {
	e.stateMu.Lock()
	fn(&e.state)
	snap := e.state
	subs := make([]func(State), 0, len(e.subs))
	for _, sub := range e.subs {
		subs = append(subs, sub)
	}
	e.stateMu.Unlock()

	for _, sub := range subs {
		sub(snap.clone())
	}
}

func (e *Editor) fail(msg string) {
	e.update(func(s *State) {
		s.Loading = false
		s.CV = nil
		s.ErrorMessage = msg
	})
}

func (e *Editor) publish(ctx context.Context, lg *slog.Logger, cv models.CV) {
	err := e.pub.PublishCVChanged(ctx, events.CVChanged{
		CVID:      cv.ID,
		UserID:    cv.UserID,
		UpdatedAt: cv.UpdatedAt,
	})
	if err != nil {
		lg.Warn("cv change publish failed", "err", err)
	}
}

// stamp - текущее время с точностью хранилища.
func (e *Editor) stamp() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}
