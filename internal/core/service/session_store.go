package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
)

// credentialKey is the name the credential is stored under in both tiers.
const credentialKey = "authToken"

// SessionStore is the single source of truth for who is logged in for one
// visitor. Reads go through Snapshot; writes only through Login and Logout.
type SessionStore struct {
	mu      sync.RWMutex
	durable Slot
	scoped  Slot
	state   domain.Session
	log     zerolog.Logger
}

// NewSessionStore builds a store and restores it from storage: the durable
// slot is read first, then the session-scoped one. The role is derived from
// the restored credential; the username is not restored. Read failures are
// logged and treated as an empty tier.
func NewSessionStore(ctx context.Context, durable, scoped Slot, resolver RoleResolver, log zerolog.Logger) *SessionStore {
	s := &SessionStore{durable: durable, scoped: scoped, log: log}

	for _, slot := range []Slot{durable, scoped} {
		credential, ok, err := slot.get(ctx)
		if err != nil {
			log.Warn().Err(err).Str("key", slot.Key).Msg("session restore: tier read failed")
			continue
		}
		if ok && credential != "" {
			s.state = domain.Session{Credential: credential, Role: resolver.Resolve(credential)}
			break
		}
	}
	return s
}

// Login stores credential in the durable slot when remember is set and in the
// session-scoped slot otherwise, removing any copy from the other slot, then
// adopts the new identity. State is unchanged when the write fails.
func (s *SessionStore) Login(ctx context.Context, credential, username string, role domain.Role, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep, drop := s.scoped, s.durable
	if remember {
		keep, drop = s.durable, s.scoped
	}
	if err := keep.set(ctx, credential); err != nil {
		return fmt.Errorf("session login: %w", err)
	}
	if err := drop.del(ctx); err != nil {
		return fmt.Errorf("session login: clear stale credential: %w", err)
	}

	s.state = domain.Session{Credential: credential, Username: username, Role: role}
	return nil
}

// Logout clears both slots and resets the in-memory state. The state is
// reset even when a slot cannot be cleared; that failure is returned.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.Session{}
	err := errors.Join(s.durable.del(ctx), s.scoped.del(ctx))
	if err != nil {
		return fmt.Errorf("session logout: %w", err)
	}
	return nil
}

// Snapshot returns the current session.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
