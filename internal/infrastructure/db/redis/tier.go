package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tier is the durable storage tier: values survive restarts and expire
// after ttl without being touched. Every write refreshes the expiry.
// Key format: <prefix><visitor key>
type Tier struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTier creates a Tier wrapping the given Redis client. A ttl of zero keeps
// values forever.
func NewTier(client *redis.Client, prefix string, ttl time.Duration) *Tier {
	return &Tier{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the stored value, or found=false when the key is absent.
func (t *Tier) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := t.client.Get(ctx, t.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value and resets the expiry.
func (t *Tier) Set(ctx context.Context, key, value string) error {
	if err := t.client.Set(ctx, t.prefix+key, value, t.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (t *Tier) Delete(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, t.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
