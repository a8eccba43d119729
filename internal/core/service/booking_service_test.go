package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
)

func TestBookingService_BookChecksAvailabilityFirst(t *testing.T) {
	api := &stubVenueAPI{available: true}
	svc := NewBookingService(api, NewValidator(), zerolog.Nop())

	booking, err := svc.Book(context.Background(), customer, domain.BookingInput{
		VenueID:         3,
		Date:            "2026-05-01",
		Time:            "18:30",
		DurationHours:   2,
		SpecialRequests: "projector",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.ID != 77 {
		t.Fatalf("unexpected booking %+v", booking)
	}
	if len(api.checks) != 1 || api.checks[0].StartTime != "2026-05-01T18:30:00" || api.checks[0].EndTime != "2026-05-01T20:30:00" {
		t.Fatalf("unexpected availability check %+v", api.checks)
	}
	if len(api.booked) != 1 || api.booked[0].SpecialRequests != "projector" {
		t.Fatalf("unexpected booking request %+v", api.booked)
	}
	if api.creds[0] != customer.Credential {
		t.Fatalf("credential not forwarded")
	}
}

func TestBookingService_UnavailableVenueIsNotBooked(t *testing.T) {
	api := &stubVenueAPI{available: false}
	svc := NewBookingService(api, NewValidator(), zerolog.Nop())

	_, err := svc.Book(context.Background(), customer, domain.BookingInput{VenueID: 1, Date: "2026-05-01", Time: "09:00", DurationHours: 1})
	if !errors.Is(err, domain.ErrVenueUnavailable) {
		t.Fatalf("expected ErrVenueUnavailable, got %v", err)
	}
	if len(api.booked) != 0 {
		t.Fatalf("book must not be called")
	}
}

func TestBookingService_ValidatesInput(t *testing.T) {
	api := &stubVenueAPI{available: true}
	svc := NewBookingService(api, NewValidator(), zerolog.Nop())

	_, err := svc.Book(context.Background(), customer, domain.BookingInput{Date: "May 1", Time: "9pm"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"venueId", "date", "time", "durationHours"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected error for %s, got %+v", field, ve.Fields)
		}
	}
	if len(api.checks) != 0 {
		t.Fatalf("backend must not be called")
	}
}
