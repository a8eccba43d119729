package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
)

// cartKey is the name the cart is stored under in the durable tier.
const cartKey = "cart"

// CartStore holds one visitor's cart and writes it to durable storage after
// every mutation. A mutation whose write fails is not applied.
type CartStore struct {
	mu   sync.Mutex
	slot Slot
	cart domain.Cart
	log  zerolog.Logger
}

// NewCartStore restores the cart from slot. A missing or unreadable cart
// starts empty.
func NewCartStore(ctx context.Context, slot Slot, log zerolog.Logger) *CartStore {
	s := &CartStore{slot: slot, log: log}

	raw, ok, err := slot.get(ctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("key", slot.Key).Msg("cart restore: tier read failed")
	case ok && raw != "":
		var items []domain.LineItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			log.Warn().Err(err).Str("key", slot.Key).Msg("cart restore: discarding unreadable cart")
			break
		}
		s.cart = sanitize(items)
	}
	return s
}

// Add merges the product into the cart.
func (s *CartStore) Add(ctx context.Context, p domain.CartProduct) (domain.Cart, error) {
	return s.mutate(ctx, func(c *domain.Cart) { c.Add(p) })
}

// UpdateQuantity sets a line item's quantity; below 1 removes it.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, qty int) (domain.Cart, error) {
	return s.mutate(ctx, func(c *domain.Cart) { c.SetQuantity(productID, qty) })
}

// Remove drops a line item; absent ids are a no-op.
func (s *CartStore) Remove(ctx context.Context, productID string) (domain.Cart, error) {
	return s.mutate(ctx, func(c *domain.Cart) { c.Remove(productID) })
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, func(c *domain.Cart) { c.Clear() })
	return err
}

// Snapshot returns a copy of the current cart.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartStore) mutate(ctx context.Context, fn func(*domain.Cart)) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	fn(&next)

	items := next.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return s.cart.Clone(), fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.slot.set(ctx, string(raw)); err != nil {
		return s.cart.Clone(), fmt.Errorf("cart: persist: %w", err)
	}

	s.cart = next
	return next.Clone(), nil
}

// sanitize drops restored line items that break the cart invariants:
// non-positive quantities and duplicate product ids.
func sanitize(items []domain.LineItem) domain.Cart {
	var c domain.Cart
	seen := make(map[string]struct{}, len(items))
	for _, li := range items {
		if li.Quantity < 1 || li.ProductID == "" {
			continue
		}
		if _, dup := seen[li.ProductID]; dup {
			continue
		}
		seen[li.ProductID] = struct{}{}
		c.Items = append(c.Items, li)
	}
	return c
}
