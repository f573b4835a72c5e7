package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateUser создаёт users/<uid> или обновляет имя и email.
// createdAt выставляется только при вставке.
func (m *Mongo) CreateUser(ctx context.Context, p models.UserProfile) error {
	const op = "storage/mongo/CreateUser"

	if p.UserID == "" {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	_, err := m.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: p.UserID}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "name", Value: p.Name},
				{Key: "email", Value: p.Email},
			}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "createdAt", Value: toMS(p.CreatedAt)},
			}},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByID возвращает профиль; отсутствие записи - storage.ErrNotFound.
func (m *Mongo) UserByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	const op = "storage/mongo/UserByID"

	res := m.users.FindOne(ctx, bson.D{{Key: "_id", Value: userID}})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc userDocument
	if err := res.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrDecode, err)
	}

	p := fromUserDocument(doc)
	return &p, nil
}

// SetUserPhotoURL обновляет photoURL существующего профиля.
func (m *Mongo) SetUserPhotoURL(ctx context.Context, userID, url string) error {
	const op = "storage/mongo/SetUserPhotoURL"

	res, err := m.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "photoURL", Value: url}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

var _ storage.UsersStorage = (*Mongo)(nil)
