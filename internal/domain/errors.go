package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// ValidationError carries a field name and a user-facing message. Handlers
// surface it inline per field; it never reaches persistence.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DiscountRejectedError identifies which eligibility check failed. Exactly one
// of applied/rejected results from a validation attempt.
type DiscountRejectedError struct {
	Reason  string // invalid_or_expired | min_order | usage_cap | not_yet_valid | not_applicable
	Message string
}

func (e *DiscountRejectedError) Error() string { return e.Message }
