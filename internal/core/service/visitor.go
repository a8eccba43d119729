package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

// VisitorID identifies one browser tab: Visitor is the long-lived cookie
// shared by every tab, Tab is the per-browsing-session cookie.
type VisitorID struct {
	Visitor string
	Tab     string
}

func (id VisitorID) durableKey(name string) string { return "visitor:" + id.Visitor + ":" + name }
func (id VisitorID) scopedKey(name string) string { return "tab:" + id.Tab + ":" + name }

// Visitor bundles the per-visitor state the handlers operate on.
type Visitor struct {
	ID       VisitorID
	Session  *SessionStore
	Cart     *CartStore
	Flow     *OrderFlow
	Products *Editor[domain.Product]
	Events   *Editor[domain.Event]

	mu       sync.Mutex
	lastSeen time.Time
}

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *Visitor) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// VisitorRegistry owns every live Visitor. The first request for a
// (visitor, tab) pair runs startup restoration from the storage tiers.
type VisitorRegistry struct {
	durable  ports.Tier
	scoped   ports.Tier
	resolver RoleResolver
	products ports.CatalogBackend[domain.Product]
	events   ports.CatalogBackend[domain.Event]
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	visitors map[VisitorID]*Visitor
}

// RegistryDeps are the collaborators every Visitor is built from.
type RegistryDeps struct {
	Durable  ports.Tier
	Scoped   ports.Tier
	Resolver RoleResolver
	Products ports.CatalogBackend[domain.Product]
	Events   ports.CatalogBackend[domain.Event]
}

func NewVisitorRegistry(deps RegistryDeps, log zerolog.Logger) *VisitorRegistry {
	resolver := deps.Resolver
	if resolver == nil {
		resolver = MarkerResolver{}
	}
	return &VisitorRegistry{
		durable:  deps.Durable,
		scoped:   deps.Scoped,
		resolver: resolver,
		products: deps.Products,
		events:   deps.Events,
		log:      log,
		now:      time.Now,
		visitors: make(map[VisitorID]*Visitor),
	}
}

// Get returns the Visitor for id, restoring it from storage on first use.
func (r *VisitorRegistry) Get(ctx context.Context, id VisitorID) *Visitor {
	r.mu.Lock()
	v, ok := r.visitors[id]
	r.mu.Unlock()
	if ok {
		v.touch(r.now())
		return v
	}

	// Restoration reads the tiers, so it runs outside the lock.
	built := r.build(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.visitors[id]; ok {
		v.touch(r.now())
		return v
	}
	r.visitors[id] = built
	return built
}

func (r *VisitorRegistry) build(ctx context.Context, id VisitorID) *Visitor {
	log := r.log.With().Str("visitor", id.Visitor).Logger()

	session := NewSessionStore(ctx,
		Slot{Tier: r.durable, Key: id.durableKey(credentialKey)},
		Slot{Tier: r.scoped, Key: id.scopedKey(credentialKey)},
		r.resolver, log)

	v := &Visitor{
		ID:       id,
		Session:  session,
		Cart:     NewCartStore(ctx, Slot{Tier: r.durable, Key: id.durableKey(cartKey)}, log),
		Flow:     newOrderFlow(),
		Products: NewEditor(domain.KindProduct, r.products, log),
		Events:   NewEditor(domain.KindEvent, r.events, log),
		lastSeen: r.now(),
	}
	log.Debug().Str("tab", id.Tab).Bool("authenticated", v.Session.Snapshot().IsAuthenticated()).Msg("visitor restored")
	return v
}

// Sweep drops visitors idle for longer than idle. Their persisted state stays
// in the tiers and is restored on the next request.
func (r *VisitorRegistry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, v := range r.visitors {
		if v.idleSince().Before(cutoff) {
			delete(r.visitors, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live visitors.
func (r *VisitorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *VisitorRegistry) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.log.Debug().Int("removed", n).Int("live", r.Len()).Msg("idle visitors swept")
			}
		}
	}
}
