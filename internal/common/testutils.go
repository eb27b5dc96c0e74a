package common

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const testDBName = "testdb"

func TestRabbitMQ(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping rabbitmq container in short mode")
	}

	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine", rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	connURL, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("could not terminate container: %v", err)
		}
	})

	return connURL
}

// TestDB starts a MongoDB container, applies the migrations found at source and
// returns the migrated database. source is relative to the caller's package, e.g.
// "file://../../migrations".
func TestDB(source string, t *testing.T) *mongo.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mongodb container in short mode")
	}

	ctx := context.Background()

	c, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		t.Fatalf("could not start mongodb container: %v", err)
	}

	connURL, err := c.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	dsn, err := MigrationDSN(connURL, testDBName)
	if err != nil {
		t.Fatalf("could not build migration dsn: %v", err)
	}

	if err := MigrateDB(source, dsn); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	db, err := NewDB(connURL, testDBName, 10, time.Minute)
	if err != nil {
		t.Fatalf("could not connect to mongodb: %v", err)
	}

	t.Cleanup(func() {
		_ = CloseDB(db)
		_ = c.Terminate(ctx)
	})

	return db
}

// ClearCollections removes every document from the named collections, keeping indexes.
func ClearCollections(t *testing.T, db *mongo.Database, names ...string) {
	t.Helper()

	for _, name := range names {
		if _, err := db.Collection(name).DeleteMany(context.Background(), bson.M{}); err != nil {
			t.Fatalf("could not clear %s: %v", name, err)
		}
	}
}
