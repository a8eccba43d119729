package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with a per-field message map.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: ve.Fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrOrderFailed):
		// The cause stays in the log; the visitor sees a generic message.
		log.Warn().Err(err).Str("path", c.Path()).Msg("order failed")
		return http.StatusBadGateway, errorResponse{Error: domain.ErrOrderFailed.Error()}
	case errors.Is(err, domain.ErrUnknownEntityKind):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrSubmissionInProgress),
		errors.Is(err, domain.ErrVenueUnavailable),
		errors.Is(err, domain.ErrInvalidOrderTransition):
		return http.StatusConflict, errorResponse{Error: rootMessage(err)}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: publicMessage(err, domain.ErrUnauthorized)}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: publicMessage(err, domain.ErrNotFound)}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorResponse{Error: publicMessage(err, domain.ErrConflict)}
	case errors.Is(err, domain.ErrBackendUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend call failed")
		return http.StatusBadGateway, errorResponse{Error: publicMessage(err, domain.ErrBackendUnavailable)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// rootMessage returns the message of the innermost wrapped error.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// publicMessage prefers the backend's own message and falls back to the
// sentinel's text.
func publicMessage(err, sentinel error) string {
	var se *backend.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return sentinel.Error()
}
