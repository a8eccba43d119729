package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultIndexTimeout = 30 * time.Second
	defaultAppName      = "coda-bean-storefront"
)

// Config holds the order store settings. Zero durations fall back to the
// package defaults.
type Config struct {
	URI          string
	Database     string
	AppName      string
	Timeout      time.Duration
	IndexTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.IndexTimeout <= 0 {
		c.IndexTimeout = defaultIndexTimeout
	}
	if c.AppName == "" {
		c.AppName = defaultAppName
	}
	return c
}

// Store is an open connection to the order database with its indexes in place.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
	Orders *OrderRepository
}

// Open connects, pings, and prepares the orders collection. The returned
// store must be closed with Close.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName(cfg.AppName))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	orders := NewOrderRepository(db)

	indexCtx, cancelIndex := context.WithTimeout(ctx, cfg.IndexTimeout)
	defer cancelIndex()
	if err := orders.EnsureIndexes(indexCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("order store ready")
	return &Store{Client: client, DB: db, Orders: orders}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
