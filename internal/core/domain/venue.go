package domain

import "time"

// Venue is a bookable space.
type Venue struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Capacity     int     `json:"capacity"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"pricePerHour"`
	IsAvailable  bool    `json:"isAvailable"`
	ImageURL     string  `json:"imageUrl"`
}

// AvailabilityCheck asks whether a venue is free for a time range.
type AvailabilityCheck struct {
	VenueID   int64  `json:"venueId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BookingRequest is the payload sent to reserve a venue.
type BookingRequest struct {
	VenueID         int64  `json:"venueId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	SpecialRequests string `json:"specialRequests"`
}

// Booking is a reservation returned by the backend.
type Booking struct {
	ID              int64   `json:"id"`
	Venue           Venue   `json:"venue"`
	UserID          int64   `json:"userId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	SpecialRequests string  `json:"specialRequests"`
}

// BookingTimeLayout is the ISO local date-time format the backend expects.
const BookingTimeLayout = "2006-01-02T15:04:05"

// FormatBookingTime renders t in BookingTimeLayout.
func FormatBookingTime(t time.Time) string {
	return t.Format(BookingTimeLayout)
}

// BookingInput is the booking form: a start date and time plus a duration.
type BookingInput struct {
	VenueID         int64  `json:"venueId"         validate:"required,gt=0"`
	Date            string `json:"date"            validate:"required,datetime=2006-01-02"`
	Time            string `json:"time"            validate:"required,datetime=15:04"`
	DurationHours   int    `json:"durationHours"   validate:"required,gte=1,max=12"`
	SpecialRequests string `json:"specialRequests"`
}

// Window returns the start and end of the requested booking.
func (in BookingInput) Window() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02 15:04", in.Date+" "+in.Time)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(time.Duration(in.DurationHours) * time.Hour), nil
}
