package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/codabean/storefront/internal/core/domain"
)

func (c *Client) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	var out []domain.Venue
	if err := c.do(ctx, request{op: "list_venues", method: http.MethodGet, path: "/venues"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CheckAvailability(ctx context.Context, check domain.AvailabilityCheck) (bool, error) {
	var free bool
	err := c.do(ctx, request{op: "check_availability", method: http.MethodPost, path: "/venues/check-availability", body: check}, &free)
	return free, err
}

func (c *Client) Book(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	var out *domain.Booking
	if err := c.do(ctx, request{op: "book_venue", method: http.MethodPost, path: "/venues/book", body: req}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("book_venue: %w", errNilResponse)
	}
	return out, nil
}

func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.do(ctx, request{op: "my_bookings", method: http.MethodGet, path: "/venues/my-bookings"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.do(ctx, request{op: "cancel_booking", method: http.MethodPost, path: idPath("/venues/cancel/", id)}, nil)
}
