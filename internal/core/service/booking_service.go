package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

// BookingService reserves venues on behalf of a logged-in visitor.
type BookingService struct {
	api      ports.VenueAPI
	validate *validator.Validate
	log      zerolog.Logger
}

func NewBookingService(api ports.VenueAPI, validate *validator.Validate, log zerolog.Logger) *BookingService {
	return &BookingService{api: api, validate: validate, log: log}
}

func (s *BookingService) Venues(ctx context.Context) ([]domain.Venue, error) {
	venues, err := s.api.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// Book checks availability first and only books a free venue.
func (s *BookingService) Book(ctx context.Context, session domain.Session, in domain.BookingInput) (*domain.Booking, error) {
	if err := ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}
	start, end, err := in.Window()
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"date": "Please enter a valid date and time"})
	}

	ctx = ports.WithCredential(ctx, session.Credential)
	startTime, endTime := domain.FormatBookingTime(start), domain.FormatBookingTime(end)

	free, err := s.api.CheckAvailability(ctx, domain.AvailabilityCheck{
		VenueID:   in.VenueID,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if !free {
		return nil, domain.ErrVenueUnavailable
	}

	booking, err := s.api.Book(ctx, domain.BookingRequest{
		VenueID:         in.VenueID,
		StartTime:       startTime,
		EndTime:         endTime,
		SpecialRequests: in.SpecialRequests,
	})
	if err != nil {
		return nil, fmt.Errorf("book venue %d: %w", in.VenueID, err)
	}
	s.log.Info().Int64("venue_id", in.VenueID).Int64("booking_id", booking.ID).Str("start", startTime).Msg("venue booked")
	return booking, nil
}

func (s *BookingService) MyBookings(ctx context.Context, session domain.Session) ([]domain.Booking, error) {
	bookings, err := s.api.MyBookings(ports.WithCredential(ctx, session.Credential))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) Cancel(ctx context.Context, session domain.Session, id int64) error {
	if err := s.api.CancelBooking(ports.WithCredential(ctx, session.Credential), id); err != nil {
		return fmt.Errorf("cancel booking %d: %w", id, err)
	}
	s.log.Info().Int64("booking_id", id).Msg("booking cancelled")
	return nil
}
