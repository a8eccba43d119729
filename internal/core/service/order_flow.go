package service

import (
	"fmt"
	"sync"

	"github.com/codabean/storefront/internal/core/domain"
)

// OrderFlow tracks one visitor's checkout through the order state machine.
type OrderFlow struct {
	mu          sync.Mutex
	state       domain.OrderState
	lastOrderID string
}

func newOrderFlow() *OrderFlow {
	return &OrderFlow{state: domain.OrderDraft}
}

// State returns the current state and the id of the last confirmed order.
func (f *OrderFlow) State() (domain.OrderState, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.lastOrderID
}

// startSubmitting moves a validated draft to submitting. A confirmed flow
// starts over as a new draft; a flow already submitting is rejected.
func (f *OrderFlow) startSubmitting() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == domain.OrderSubmitting {
		return domain.ErrSubmissionInProgress
	}
	if f.state == domain.OrderConfirmed {
		f.state = domain.OrderDraft
	}
	for _, next := range []domain.OrderState{domain.OrderValidated, domain.OrderSubmitting} {
		if err := f.transitionLocked(next); err != nil {
			return err
		}
	}
	return nil
}

func (f *OrderFlow) confirm(orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.transitionLocked(domain.OrderConfirmed); err != nil {
		return err
	}
	f.lastOrderID = orderID
	return nil
}

// fail returns the flow to draft after a failed submission.
func (f *OrderFlow) fail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = domain.OrderDraft
}

func (f *OrderFlow) transitionLocked(next domain.OrderState) error {
	if !f.state.CanTransitionTo(next) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidOrderTransition, f.state, next)
	}
	f.state = next
	return nil
}
