package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/codabean/storefront/internal/core/service"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures come back as *domain.ValidationError keyed by JSON field name.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(v *validator.Validate) *echoValidator {
	if v == nil {
		v = service.NewValidator()
	}
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return service.ValidateStruct(ev.v, i)
}
