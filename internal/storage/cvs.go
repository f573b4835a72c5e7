package storage

//go:generate mockgen -source=./cvs.go -destination=../../mocks/cvs.go -package=mocks

import (
	"context"

	"github.com/pribylovaa/cv-service/internal/models"
)

// CVStorage описывает операции над коллекцией резюме.
// Запись всегда целиком: частичных обновлений нет, конфликты не отслеживаются
// (выигрывает последний писатель).
type CVStorage interface {
	// CVByUserID возвращает резюме пользователя.
	// Если документов несколько - каноническим считается первый.
	// Нет ни одного - ErrNotFound; документ не декодируется - ErrDecode.
	CVByUserID(ctx context.Context, userID string) (*models.CV, error)

	// CreateCV сохраняет новое резюме и возвращает назначенный хранилищем идентификатор.
	// Поле ID входного значения игнорируется.
	CreateCV(ctx context.Context, cv models.CV) (string, error)

	// ReplaceCV перезаписывает документ с идентификатором cv.ID целиком (upsert).
	// Некорректный cv.ID - ErrInvalidArgument.
	ReplaceCV(ctx context.Context, cv models.CV) error
}
