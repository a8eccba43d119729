package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	touchedAt time.Time
}

// Tier is the session-scoped storage tier. Values live in process memory
// and are dropped once idle for longer than the configured TTL, or when the
// process stops.
type Tier struct {
	mu      sync.RWMutex
	entries map[string]*entry
	idle    time.Duration
	now     func() time.Time
}

// NewTier creates an empty in-memory tier. An idle TTL of zero never expires.
func NewTier(idle time.Duration) *Tier {
	return &Tier{
		entries: make(map[string]*entry),
		idle:    idle,
		now:     time.Now,
	}
}

// Get returns the value for key. Reading a live key counts as activity.
func (t *Tier) Get(_ context.Context, key string) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		return "", false, nil
	}
	now := t.now()
	if t.expired(e, now) {
		delete(t.entries, key)
		return "", false, nil
	}
	e.touchedAt = now
	return e.value, true, nil
}

func (t *Tier) Set(_ context.Context, key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[key] = &entry{value: value, touchedAt: t.now()}
	return nil
}

func (t *Tier) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, key)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (t *Tier) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Purge drops every expired entry and returns how many were removed.
func (t *Tier) Purge() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now, removed := t.now(), 0
	for k, e := range t.entries {
		if t.expired(e, now) {
			delete(t.entries, k)
			removed++
		}
	}
	return removed
}

func (t *Tier) expired(e *entry, now time.Time) bool {
	return t.idle > 0 && now.Sub(e.touchedAt) > t.idle
}
