package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/service"
)

// BookingHandler reserves café venues for logged-in visitors.
type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// ListVenues godoc
//
//	@Summary	List venues
//	@Tags		booking
//	@Produce	json
//	@Success	200	{array}		domain.Venue
//	@Failure	502	{object}	errorResponse
//	@Router		/api/venues [get]
func (h *BookingHandler) ListVenues(c echo.Context) error {
	venues, err := h.bookings.Venues(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, venues)
}

// Book godoc
//
//	@Summary		Book a venue
//	@Description	Checks availability for the requested window and books only a free venue.
//	@Tags			booking
//	@Accept			json
//	@Produce		json
//	@Param			body	body		domain.BookingInput	true	"Booking"
//	@Success		201		{object}	domain.Booking
//	@Failure		409		{object}	errorResponse
//	@Failure		422		{object}	validationErrorResponse
//	@Router			/api/bookings [post]
func (h *BookingHandler) Book(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req domain.BookingInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.bookings.Book(c.Request().Context(), v.Session.Snapshot(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// MyBookings godoc
//
//	@Summary	List the visitor's bookings
//	@Tags		booking
//	@Produce	json
//	@Success	200	{array}		domain.Booking
//	@Failure	401	{object}	errorResponse
//	@Router		/api/bookings [get]
func (h *BookingHandler) MyBookings(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.MyBookings(c.Request().Context(), v.Session.Snapshot())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Cancel godoc
//
//	@Summary	Cancel a booking
//	@Tags		booking
//	@Param		id	path	int	true	"Booking ID"
//	@Success	204
//	@Failure	404	{object}	errorResponse
//	@Router		/api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.bookings.Cancel(c.Request().Context(), v.Session.Snapshot(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
