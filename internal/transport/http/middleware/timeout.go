package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// TimeoutPolicy - дедлайны обработки: общий и для потоковых ответов (NDJSON).
// Нулевое значение дедлайна - без ограничения, остаётся только отмена клиентом.
type TimeoutPolicy struct {
	Default time.Duration
	Stream  time.Duration
	// Streams - суффиксы путей, отвечающих потоком ("/speech/transcribe").
	Streams []string
}

func (p TimeoutPolicy) limit(r *http.Request) time.Duration {
	for _, s := range p.Streams {
		if s != "" && strings.HasSuffix(r.URL.Path, s) {
			return p.Stream
		}
	}

	return p.Default
}

// Timeout навешивает на запрос дедлайн по политике.
// Более ранний дедлайн вызывающего сохраняется как есть.
func Timeout(p TimeoutPolicy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := p.limit(r)
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			if dl, ok := r.Context().Deadline(); ok && time.Until(dl) <= d {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
