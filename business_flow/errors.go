// Package businessflow contains the core business logic for checkout link
// resolution, redirect link management and the product catalog.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Redirect link errors
	ErrLinkNotFound       = errors.New("redirect link not found")
	ErrLinkFieldsRequired = errors.New("serviceKey and url are required")
	ErrLinkURLInvalid     = errors.New("url is invalid")
	ErrLinkConflict       = errors.New("an active link already exists for this service and quantity")

	// Product errors
	ErrProductNotFound       = errors.New("product not found")
	ErrProductFieldsRequired = errors.New("network, service type, quantity and price are required")

	// Checkout errors
	ErrCheckoutKeyRequired        = errors.New("checkout key is required")
	ErrCheckoutLinkNotConfigured  = errors.New("checkout link is not configured")
	ErrCheckoutOverrideNotFound   = errors.New("checkout override not found")
	ErrCheckoutOverrideIncomplete = errors.New("serviceKey and url are required for a checkout override")

	// Purchase resolution errors
	ErrServiceNotMapped = errors.New("service is not mapped")
)

// BusinessError represents a business logic error with context
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
