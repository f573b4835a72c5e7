package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pribylovaa/cv-service/internal/metrics"
	"github.com/pribylovaa/cv-service/internal/storage"
	"github.com/pribylovaa/cv-service/pkg/log"
)

// Sessions - реестр редакторов процесса: один Editor на пользователя.
// Редактор без обращений дольше idle TTL вытесняется (EvictIdle/RunEviction);
// следующий запрос пользователя заново загрузит резюме из хранилища.
type Sessions struct {
	cvs  storage.CVStorage
	opts []EditorOption
	now  func() time.Time

	mu      sync.Mutex
	editors map[string]*session
}

type session struct {
	editor   *Editor
	lastUsed time.Time
}

// NewSessions создаёт пустой реестр; opts применяются к каждому новому редактору.
func NewSessions(cvs storage.CVStorage, opts ...EditorOption) *Sessions {
	return &Sessions{
		cvs:     cvs,
		opts:    opts,
		now:     time.Now,
		editors: make(map[string]*session),
	}
}

// Editor возвращает редактор пользователя, при первом обращении создавая его,
// и гарантирует, что резюме загружено (см. Editor.EnsureLoaded).
func (s *Sessions) Editor(ctx context.Context, userID string) (*Editor, error) {
	const op = "service/sessions/Editor"

	if strings.TrimSpace(userID) == "" {
		log.From(ctx).Warn("invalid argument: empty user_id", "op", op)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	s.mu.Lock()
	sess, ok := s.editors[userID]
	if !ok {
		sess = &session{editor: NewEditor(s.cvs, s.opts...)}
		s.editors[userID] = sess
		metrics.ActiveSessions.Inc()
	}
	sess.lastUsed = s.now()
	e := sess.editor
	s.mu.Unlock()

	if _, err := e.EnsureLoaded(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// SignOut закрывает сессию пользователя. Возвращает false, если сессии не было.
func (s *Sessions) SignOut(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.editors[userID]; !ok {
		return false
	}

	delete(s.editors, userID)
	metrics.ActiveSessions.Dec()

	return true
}

// EvictIdle закрывает сессии без обращений дольше ttl и возвращает их число.
// ttl <= 0 - ничего не вытесняется.
func (s *Sessions) EvictIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for uid, sess := range s.editors {
		if sess.lastUsed.Before(cutoff) {
			delete(s.editors, uid)
			n++
		}
	}
	metrics.ActiveSessions.Sub(float64(n))

	return n
}

// RunEviction раз в ttl/2 вызывает EvictIdle, пока не отменён ctx.
func (s *Sessions) RunEviction(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	t := time.NewTicker(ttl / 2)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.EvictIdle(ttl); n > 0 {
				log.From(ctx).Info("idle sessions evicted", "count", n, "left", s.Len())
			}
		}
	}
}

// Len - число открытых сессий.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.editors)
}
