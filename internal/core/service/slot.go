package service

import (
	"context"

	"github.com/codabean/storefront/internal/core/ports"
)

// Slot addresses one key inside a storage tier.
type Slot struct {
	Tier ports.Tier
	Key  string
}

func (s Slot) get(ctx context.Context) (string, bool, error) {
	if s.Tier == nil {
		return "", false, nil
	}
	return s.Tier.Get(ctx, s.Key)
}

func (s Slot) set(ctx context.Context, value string) error {
	if s.Tier == nil {
		return nil
	}
	return s.Tier.Set(ctx, s.Key, value)
}

func (s Slot) del(ctx context.Context) error {
	if s.Tier == nil {
		return nil
	}
	return s.Tier.Delete(ctx, s.Key)
}
