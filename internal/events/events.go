// Package events публикует уведомления об изменении резюме.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CVChanged - событие об успешном сохранении резюме.
type CVChanged struct {
	CVID      string    `json:"cv_id"`
	UserID    string    `json:"user_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher - минимальный контракт публикации.
type Publisher interface {
	// PublishCVChanged отправляет событие; ошибка не влияет на результат сохранения.
	PublishCVChanged(ctx context.Context, e CVChanged) error
	// Close освобождает ресурсы.
	Close() error
}

// Noop - публикатор, когда Redis не настроен.
type Noop struct{}

func (Noop) PublishCVChanged(context.Context, CVChanged) error { return nil }
func (Noop) Close() error                                      { return nil }

type redisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedis создаёт публикатор из URL (например, redis://:pass@host:6379/0).
// Пустой channel - "cv:changed".
func NewRedis(ctx context.Context, redisURL, channel string) (Publisher, error) {
	const op = "events/NewRedis"

	if channel == "" {
		channel = "cv:changed"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &redisPublisher{rdb: rdb, channel: channel}, nil
}

func (p *redisPublisher) PublishCVChanged(ctx context.Context, e CVChanged) error {
	const op = "events/PublishCVChanged"

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p *redisPublisher) Close() error {
	return p.rdb.Close()
}
