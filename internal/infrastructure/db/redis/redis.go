package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second

	// DefaultPrefix namespaces every storefront key in a shared Redis.
	DefaultPrefix = "storefront:"
)

// Config captures the durable tier settings. TTL is the idle expiry of a
// visitor's values; zero keeps them forever.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	return c
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  c.Timeout,
		ReadTimeout:  c.Timeout,
		WriteTimeout: c.Timeout,
	}
}

// Open dials Redis, checks it with a ping, and returns the client together
// with the durable tier built on it. The caller closes the client.
func Open(ctx context.Context, cfg Config) (*redis.Client, *Tier, error) {
	cfg = cfg.withDefaults()
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, NewTier(client, cfg.Prefix, cfg.TTL), nil
}
