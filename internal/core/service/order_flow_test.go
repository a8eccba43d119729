package service

import (
	"errors"
	"testing"

	"github.com/codabean/storefront/internal/core/domain"
)

func TestOrderFlow_Lifecycle(t *testing.T) {
	f := newOrderFlow()

	if err := f.startSubmitting(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if state, _ := f.State(); state != domain.OrderSubmitting {
		t.Fatalf("expected submitting, got %s", state)
	}
	if err := f.startSubmitting(); !errors.Is(err, domain.ErrSubmissionInProgress) {
		t.Fatalf("expected ErrSubmissionInProgress, got %v", err)
	}

	if err := f.confirm("ORD-1"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	state, id := f.State()
	if state != domain.OrderConfirmed || id != "ORD-1" {
		t.Fatalf("unexpected state %s / %s", state, id)
	}

	// A confirmed flow accepts a new order.
	if err := f.startSubmitting(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	f.fail()
	if state, _ := f.State(); state != domain.OrderDraft {
		t.Fatalf("expected draft after failure, got %s", state)
	}
}

func TestOrderFlow_ConfirmRequiresSubmitting(t *testing.T) {
	f := newOrderFlow()
	if err := f.confirm("ORD-1"); !errors.Is(err, domain.ErrInvalidOrderTransition) {
		t.Fatalf("expected ErrInvalidOrderTransition, got %v", err)
	}
}
