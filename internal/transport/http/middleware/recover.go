package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/cv-service/internal/identity"
	"github.com/pribylovaa/cv-service/internal/service"
	apierrors "github.com/pribylovaa/cv-service/internal/transport/http/errors"
	logctx "github.com/pribylovaa/cv-service/pkg/log"
)

// Recover превращает panic в 500/internal. Клиент видит только общее сообщение,
// в лог уходят причина, шаблон маршрута и user_id, если запрос уже аутентифицирован.
// Ставится и в корне, и за Authenticate: внутренний экземпляр знает пользователя.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []slog.Attr{
					slog.String("method", r.Method),
					slog.String("route", routePattern(r)),
					slog.Any("reason", rec),
				}
				if id, ok := identity.From(r.Context()); ok {
					attrs = append(attrs, slog.String("user_id", id.UserID))
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic", attrs...)
				apierrors.WriteError(w, r, fmt.Errorf("transport/http/middleware/Recover: %w", service.ErrInternal))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// routePattern - шаблон chi ("/v1/cv/skills/{index}"); до маршрутизации - путь запроса.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}

	return r.URL.Path
}
