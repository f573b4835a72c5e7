package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/cv-service/internal/models"
	"github.com/pribylovaa/cv-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CVByUserID возвращает резюме по равенству userId.
// При нескольких документах берётся первый по _id.
// Ошибка выборки возвращается как есть, ошибка декодирования - storage.ErrDecode.
func (m *Mongo) CVByUserID(ctx context.Context, userID string) (*models.CV, error) {
	const op = "storage/mongo/CVByUserID"

	res := m.cvs.FindOne(ctx,
		bson.D{{Key: "userId", Value: userID}},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)

	if err := res.Err(); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc cvDocument
	if err := res.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrDecode, err)
	}

	cv := fromCVDocument(doc)
	return &cv, nil
}

// CreateCV вставляет новый документ; _id генерирует драйвер.
func (m *Mongo) CreateCV(ctx context.Context, cv models.CV) (string, error) {
	const op = "storage/mongo/CreateCV"

	res, err := m.cvs.InsertOne(ctx, toCVDocument(cv))
	if err != nil {
		return "", fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: inserted id type %T", op, res.InsertedID)
	}

	return oid.Hex(), nil
}

// ReplaceCV перезаписывает документ целиком по _id (upsert).
func (m *Mongo) ReplaceCV(ctx context.Context, cv models.CV) error {
	const op = "storage/mongo/ReplaceCV"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(cv.ID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	doc := toCVDocument(cv)
	doc.ID = oid

	_, err = m.cvs.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

var _ storage.CVStorage = (*Mongo)(nil)
