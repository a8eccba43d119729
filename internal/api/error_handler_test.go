package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/infrastructure/backend"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), http.StatusBadRequest, "invalid request body"},
		{"not found", fmt.Errorf("get product 9: %w", domain.ErrNotFound), http.StatusNotFound, "resource not found"},
		{"backend message", fmt.Errorf("login: %w", &backend.StatusError{Code: 401, Message: "Bad credentials"}), http.StatusUnauthorized, "Bad credentials"},
		{"backend down", fmt.Errorf("list products: %w", domain.ErrBackendUnavailable), http.StatusBadGateway, "backend unavailable"},
		{"conflict", &backend.StatusError{Code: 409}, http.StatusConflict, "resource already exists"},
		{"empty cart", domain.ErrEmptyCart, http.StatusConflict, "cart is empty"},
		{"venue taken", domain.ErrVenueUnavailable, http.StatusConflict, "venue not available at this time"},
		{"order failed", fmt.Errorf("%w: %w", domain.ErrOrderFailed, errors.New("mongo: timeout")), http.StatusBadGateway, "order could not be placed"},
		{"unknown kind", domain.ErrUnknownEntityKind, http.StatusBadRequest, "unknown catalog entity kind"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), rec)

	err := domain.NewValidationError(map[string]string{"firstName": "This field is required"})
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "validation failed" || resp.Fields["firstName"] != "This field is required" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}
