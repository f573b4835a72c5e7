// Package identity проверяет access-токены внешнего провайдера идентичности
// и переносит личность вызывающего через context.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pribylovaa/cv-service/internal/config"
)

var (
	// ErrInvalidToken - подпись, формат, издатель или аудитория не прошли проверку.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired - срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// Identity - текущий пользователь.
type Identity struct {
	UserID string
	Email  string
}

type accessClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier проверяет HS256-токены.
type Verifier struct {
	secret   []byte
	issuer   string
	audience []string
	now      func() time.Time
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
}

// Verify проверяет токен и возвращает личность. Если claim uid пуст, используется sub.
func (v *Verifier) Verify(tokenStr string) (Identity, error) {
	const op = "identity/Verify"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5 * time.Second),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}

	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	if len(v.audience) > 0 {
		opts = append(opts, jwt.WithAudience(v.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return v.secret, nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}

	if uid == "" {
		return Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return Identity{UserID: uid, Email: claims.Email}, nil
}

type ctxKey struct{}

// Into кладёт личность в контекст.
func Into(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From достаёт личность из контекста.
func From(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
