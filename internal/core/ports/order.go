package ports

import (
	"context"

	"github.com/codabean/storefront/internal/core/domain"
)

// OrderRepository persists placed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// FindByID returns domain.ErrNotFound when no order matches. When
	// visitorID is non-empty the lookup is scoped to that visitor.
	FindByID(ctx context.Context, id, visitorID string) (*domain.Order, error)
	// UpdateState records a lifecycle transition of a stored order and
	// returns domain.ErrNotFound when id is unknown.
	UpdateState(ctx context.Context, id string, state domain.OrderState) error
}

// OrderNotifier hands confirmed orders to downstream consumers without
// blocking the checkout.
type OrderNotifier interface {
	Notify(event domain.OrderConfirmedEvent)
}

// OrderPublisher delivers an order event to the message broker.
type OrderPublisher interface {
	PublishOrderConfirmed(ctx context.Context, event domain.OrderConfirmedEvent) error
}
