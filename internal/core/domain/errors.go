package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrConflict               = errors.New("resource already exists")
	ErrBackendUnavailable     = errors.New("backend unavailable")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrOrderFailed            = errors.New("order could not be placed")
	ErrSubmissionInProgress   = errors.New("order submission already in progress")
	ErrVenueUnavailable       = errors.New("venue not available at this time")
	ErrUnknownEntityKind      = errors.New("unknown catalog entity kind")
	ErrInvalidOrderTransition = errors.New("invalid order state transition")
)

// ValidationError carries field-level messages keyed by the field's wire name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns nil when fields is empty so callers can return it directly.
func NewValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
