package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo wraps the MongoDB client and the application database.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect establishes a MongoDB connection with retry logic.
// Retries with exponential backoff: 1s, 2s, 4s, 8s, 16s (total ~31s before failure).
func Connect(ctx context.Context, uri, dbName string, maxRetries int) (*Mongo, error) {
	var err error

	// Ensure at least one attempt even if maxRetries is 0
	attempts := maxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		var client *mongo.Client
		client, err = connect(ctx, uri)
		if err == nil {
			m := &Mongo{Client: client, Database: client.Database(dbName)}
			if err = m.createIndexes(ctx); err != nil {
				_ = client.Disconnect(ctx)
				err = fmt.Errorf("create indexes: %w", err)
			} else {
				log.Info().Str("database", dbName).Msg("database connection established")
				return m, nil
			}
		}

		backoff := time.Duration(1<<attempt) * time.Second
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Dur("next_retry_in", backoff).
			Msg("database connection failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, err)
}

func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	// Verify connection actually works
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	return client, nil
}

// createIndexes creates the unique index on coupon.code. Coupon codes are
// stored normalized, so a plain unique index gives case-insensitive
// uniqueness.
func (m *Mongo) createIndexes(ctx context.Context) error {
	coupons := m.Database.Collection("coupon")
	codeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("coupon_code_unique"),
	}
	if _, err := coupons.Indexes().CreateOne(ctx, codeIndex); err != nil {
		return fmt.Errorf("coupon code index: %w", err)
	}
	return nil
}

// Ping verifies the server is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

// Name returns the application database name.
func (m *Mongo) Name() string {
	return m.Database.Name()
}

// ListCollectionNames lists collections in the application database.
// Diagnostic only.
func (m *Mongo) ListCollectionNames(ctx context.Context) ([]string, error) {
	return m.Database.ListCollectionNames(ctx, bson.M{})
}

// Disconnect closes the MongoDB connection.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
