package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultTimeout bounds connection setup and every repository call.
const defaultTimeout = 10 * time.Second

// Config holds the connection settings for the user store.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial dial and ping; zero selects defaultTimeout.
	Timeout time.Duration
}

// Connect dials the user store and proves liveness with a primary ping
// before anything depends on it. The returned client owns the connection
// pool; the database handle is where the users collection lives.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to user store: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping user store: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
