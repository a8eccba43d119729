package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

// Quote is the price breakdown shown next to the checkout form.
type Quote struct {
	Subtotal     domain.Cents `json:"subtotal"`
	ShippingCost domain.Cents `json:"shippingCost"`
	Total        domain.Cents `json:"total"`
	ItemCount    int          `json:"itemCount"`
}

// CheckoutService turns a visitor's cart and checkout form into an order.
type CheckoutService struct {
	orders   ports.OrderRepository
	notifier ports.OrderNotifier
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

func NewCheckoutService(orders ports.OrderRepository, notifier ports.OrderNotifier, validate *validator.Validate, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		notifier: notifier,
		validate: validate,
		log:      log,
		now:      time.Now,
	}
}

// Validate checks the form without touching the cart or the order flow.
func (s *CheckoutService) Validate(draft domain.CheckoutDraft) error {
	return ValidateStruct(s.validate, draft)
}

// Quote prices cart with the given shipping method. An unknown method
// quotes without shipping.
func (s *CheckoutService) Quote(cart domain.Cart, shippingMethod string) Quote {
	q := Quote{Subtotal: cart.Total(), ItemCount: cart.ItemCount()}
	if opt, ok := domain.FindShippingOption(shippingMethod); ok && !cart.IsEmpty() {
		q.ShippingCost = opt.Price
	}
	q.Total = q.Subtotal + q.ShippingCost
	return q
}

// Submit places an order for v's cart. Validation runs before anything else
// and a failed form never reaches the repository. The order is stored as
// submitting and then marked confirmed; a failure at either step returns the
// flow to draft and leaves the cart as it was.
func (s *CheckoutService) Submit(ctx context.Context, v *Visitor, draft domain.CheckoutDraft) (*domain.Order, error) {
	if err := s.Validate(draft); err != nil {
		return nil, err
	}

	cart := v.Cart.Snapshot()
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	if err := v.Flow.startSubmitting(); err != nil {
		return nil, err
	}

	order := s.buildOrder(v, cart, draft)
	if err := s.orders.Create(ctx, order); err != nil {
		v.Flow.fail()
		s.log.Error().Err(err).Str("order_id", order.ID).Str("visitor", v.ID.Visitor).Msg("order save failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrOrderFailed, err)
	}

	if err := s.orders.UpdateState(ctx, order.ID, domain.OrderConfirmed); err != nil {
		v.Flow.fail()
		s.log.Error().Err(err).Str("order_id", order.ID).Str("visitor", v.ID.Visitor).Msg("order confirm failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrOrderFailed, err)
	}
	order.State = domain.OrderConfirmed

	if err := v.Flow.confirm(order.ID); err != nil {
		return nil, err
	}

	if err := v.Cart.Clear(ctx); err != nil {
		// The order stands; a cart that could not be cleared is still usable.
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("cart not cleared after order")
	}

	s.notifier.Notify(domain.OrderConfirmedEvent{
		OrderID:   order.ID,
		Username:  order.Username,
		Total:     order.Total,
		ItemCount: cart.ItemCount(),
		CreatedAt: order.CreatedAt,
	})

	s.log.Info().Str("order_id", order.ID).Str("total", order.Total.String()).Int("items", cart.ItemCount()).Msg("order confirmed")
	return order, nil
}

// Order returns one of v's orders.
func (s *CheckoutService) Order(ctx context.Context, v *Visitor, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id, v.ID.Visitor)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return order, nil
}

func (s *CheckoutService) buildOrder(v *Visitor, cart domain.Cart, draft domain.CheckoutDraft) *domain.Order {
	q := s.Quote(cart, draft.ShippingMethod)
	return &domain.Order{
		ID:             newOrderID(),
		VisitorID:      v.ID.Visitor,
		Username:       v.Session.Snapshot().Username,
		Items:          cart.Clone().Items,
		Subtotal:       q.Subtotal,
		ShippingCost:   q.ShippingCost,
		Total:          q.Total,
		ShippingMethod: draft.ShippingMethod,
		PaymentMethod:  draft.PaymentMethod,
		Contact: domain.Contact{
			FirstName: draft.FirstName,
			LastName:  draft.LastName,
			Email:     draft.Email,
			Phone:     draft.Phone,
			Address:   draft.Address,
			City:      draft.City,
			State:     draft.State,
			Zip:       draft.Zip,
			Country:   draft.Country,
		},
		Notes:     draft.Notes,
		State:     domain.OrderSubmitting,
		CreatedAt: s.now().UTC(),
	}
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
