package memory

import (
	"context"
	"testing"
	"time"
)

func TestTier_SetGetDelete(t *testing.T) {
	tier := NewTier(0)
	ctx := context.Background()

	if _, ok, _ := tier.Get(ctx, "k"); ok {
		t.Fatalf("expected missing key")
	}
	if err := tier.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := tier.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}
	if err := tier.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := tier.Get(ctx, "k"); ok {
		t.Fatalf("expected key deleted")
	}
}

func TestTier_IdleExpiry(t *testing.T) {
	tier := NewTier(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tier.now = func() time.Time { return now }
	ctx := context.Background()

	_ = tier.Set(ctx, "a", "1")
	_ = tier.Set(ctx, "b", "2")

	now = now.Add(45 * time.Second)
	if _, ok, _ := tier.Get(ctx, "a"); !ok {
		t.Fatalf("a must still be live")
	}

	now = now.Add(45 * time.Second)
	if _, ok, _ := tier.Get(ctx, "b"); ok {
		t.Fatalf("b must have expired")
	}
	if _, ok, _ := tier.Get(ctx, "a"); !ok {
		t.Fatalf("reading a must have kept it live")
	}

	now = now.Add(2 * time.Minute)
	if n := tier.Purge(); n != 1 || tier.Len() != 0 {
		t.Fatalf("expected a purged, removed=%d len=%d", n, tier.Len())
	}
}
