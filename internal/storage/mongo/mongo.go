package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/cv-service/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	cvsCollection   = "cvs"
	usersCollection = "users"
	defaultDBName   = "cv"
)

// Mongo - тонкий адаптер над коллекциями cvs и users.
type Mongo struct {
	client *mongodriver.Client
	db     *mongodriver.Database
	cvs    *mongodriver.Collection
	users  *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение и создаёт индексы.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.DB.URL))

	m := &Mongo{
		client: cli,
		db:     db,
		cvs:    db.Collection(cvsCollection),
		users:  db.Collection(usersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Ping проверяет доступность primary; используется readiness-пробой.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индекс для выборки резюме по владельцу.
// Индекс не уникальный: дубликаты по userId не отслеживаются, берётся первый.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.cvs.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("user_id"),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из пути mongodb URI.
// Если его нет - возвращает имя по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
