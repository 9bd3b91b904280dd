package handler

import (
	"github.com/shopmanagement/portal/internal/core/service"
)

// echoValidator lets Echo call c.Validate(req) with the shared request
// validator, so handlers and the session layer report fields the same way.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface. Rejected requests yield
// a *domain.ValidationError.
func (echoValidator) Validate(i any) error {
	return service.Validate(i)
}
