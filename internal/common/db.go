package common

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	BlogCollection = "blogs"
	UserCollection = "users"
)

// NewDB connects to MongoDB and returns a handle to the named database.
func NewDB(URI, name string, maxPoolSize uint64, maxIdleTime time.Duration) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(URI).
		SetMaxPoolSize(maxPoolSize).
		SetMaxConnIdleTime(maxIdleTime)

	client, err := connectDB(opts)
	if err != nil {
		return nil, err
	}

	return client.Database(name), nil
}

// connectDB connects to the server and pings the primary before returning the client
func connectDB(opts *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// CloseDB disconnects the client behind db.
func CloseDB(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.Client().Disconnect(ctx)
}

// MigrateDB applies every pending migration found at source (for example
// "file://migrations") to the database addressed by dsn. The dsn must carry the
// database name in its path: mongodb://host:27017/bloglist.
func MigrateDB(source, dsn string) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// MigrationDSN sets the path of a MongoDB connection URI to the database name,
// keeping any query options, so that it can be handed to MigrateDB.
func MigrationDSN(URI, name string) (string, error) {
	u, err := url.Parse(URI)
	if err != nil {
		return "", fmt.Errorf("parse mongodb uri: %w", err)
	}

	u.Path = "/" + name
	u.RawPath = ""

	return u.String(), nil
}
