package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")

	ErrBuyerNotApproved   = errors.New("buyer not approved")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrNoTermsForBuyer    = errors.New("seller has no terms for buyer")
	ErrNoTermSelected     = errors.New("no term selected")
	ErrTermNotAvailable   = errors.New("term not available")
	ErrOrderNotCreated    = errors.New("order not created")
	ErrOrderNotRecorded   = errors.New("order submitted but not recorded")

	ErrProviderTransport = errors.New("credit provider unavailable")

	ErrMissingField = errors.New("missing field")
	ErrInvalidTaxID = errors.New("invalid tax id")
	ErrInvalidCart  = errors.New("invalid cart")
)

// MissingFieldError reports an absent request or response field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

// Is makes MissingFieldError match ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// ProviderError is an explicit error status returned by the credit provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("credit provider status %d", e.StatusCode)
	}
	return fmt.Sprintf("credit provider status %d: %s", e.StatusCode, e.Message)
}
