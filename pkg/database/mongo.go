// Package database owns the MongoDB connection shared by the whole app.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/barecheradouane2/ShoppingStorev1/config"
)

// OpTimeout bounds a single store round trip. Reads that hit it are safe
// to retry; writes that adjust stock are not (see the inventory service).
const OpTimeout = 5 * time.Second

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client and verifies the connection.
// Returns an error instead of calling log.Fatal so the caller can shut
// down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())
	return nil
}

// DB returns the application database handle. Connect must have run.
func DB() *mongo.Database {
	return db
}

// Collection returns a named collection from the application database.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// Ctx returns a context bounded by OpTimeout for one store round trip.
func Ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, OpTimeout)
}

// Disconnect closes the client. Used during graceful shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
