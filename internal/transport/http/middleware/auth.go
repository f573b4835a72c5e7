package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/cv-service/internal/identity"
	apierrors "github.com/pribylovaa/cv-service/internal/transport/http/errors"
	logctx "github.com/pribylovaa/cv-service/pkg/log"
)

// TokenVerifier проверяет access-токен и возвращает личность владельца.
type TokenVerifier interface {
	Verify(token string) (identity.Identity, error)
}

// Authenticate требует заголовок "Authorization: Bearer <token>".
// Проверенная личность кладётся в контекст (identity.Into), user_id - в логгер.
// Без токена или с невалидным токеном запрос завершается 401.
func Authenticate(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "transport/http/middleware/Authenticate"

			token, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				apierrors.WriteError(w, r, fmt.Errorf("%s: %w", op, apierrors.ErrUnauthenticated))
				return
			}

			id, err := v.Verify(token)
			if err != nil {
				logctx.From(r.Context()).Warn("token rejected", "op", op, "err", err)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := identity.Into(r.Context(), id)
			ctx = logctx.Into(ctx, logctx.From(ctx).With("user_id", id.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
