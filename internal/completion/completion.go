// Package completion улучшает тексты резюме: удалённая модель (Gemini)
// или локальная эвристика, если ключ API не задан.
// Стратегия выбирается один раз при создании (см. New).
package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/cv-service/internal/config"
	"github.com/pribylovaa/cv-service/internal/metrics"
	"github.com/pribylovaa/cv-service/pkg/log"
)

// ErrCompletion - сбой удалённой модели (сеть, пустой или нераспознанный ответ).
var ErrCompletion = errors.New("completion failed")

const (
	StrategyLocal  = "local"
	StrategyGemini = "gemini"
)

// Improver улучшает text в контексте раздела резюме contextLabel.
type Improver interface {
	Improve(ctx context.Context, text, contextLabel string) (string, error)
}

// Service - выбранная стратегия с метриками и логированием.
type Service struct {
	next     Improver
	strategy string
}

// New выбирает стратегию: APIKey задан - Gemini, иначе Local.
func New(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	const op = "completion/New"

	if cfg.APIKey == "" {
		return &Service{next: Local{}, strategy: StrategyLocal}, nil
	}

	g, err := NewGemini(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Service{next: g, strategy: StrategyGemini}, nil
}

// Strategy возвращает имя выбранной стратегии.
func (s *Service) Strategy() string {
	return s.strategy
}

func (s *Service) Improve(ctx context.Context, text, contextLabel string) (string, error) {
	const op = "completion/Improve"

	out, err := s.next.Improve(ctx, text, contextLabel)
	metrics.Completions.WithLabelValues(s.strategy, metrics.Result(err)).Inc()

	if err != nil {
		log.From(ctx).Error("completion failed",
			"op", op,
			"strategy", s.strategy,
			"context", contextLabel,
			"err", err,
		)

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
