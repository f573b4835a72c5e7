package middleware

import (
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/pribylovaa/cv-service/pkg/log"
)

// Logging кладёт в контекст логгер с request_id и после ответа пишет запись "http".
// Уровень по статусу: 5xx - Error, 4xx - Warn, остальное - Info.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lg := l
			if rid := r.Header.Get("X-Request-Id"); rid != "" {
				lg = lg.With(slog.String("request_id", rid))
			}
			r = r.WithContext(logctx.Into(r.Context(), lg))

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			status := sw.code()
			lg.LogAttrs(r.Context(), levelFor(status), "http",
				slog.String("method", r.Method),
				slog.String("route", routePattern(r)),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("dur", time.Since(start)),
				slog.Int("bytes", sw.count),
			)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
