package ports

import "context"

// Tier is one persistence lifetime for small string values. Get returns
// ("", false, nil) when the key is absent.
type Tier interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
