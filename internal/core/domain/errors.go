package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrStoreExists      = errors.New("store already exists")
	ErrStoreNotFound    = errors.New("store not found")
	ErrProductExists    = errors.New("product already exists")
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerExists   = errors.New("customer already exists")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("access forbidden")
)

// ValidationError reports a required field that was missing, blank or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

// NewRequiredError is shorthand for a missing or blank required field.
func NewRequiredError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is invalid"
	}
	return fmt.Sprintf("field '%s' %s", e.Field, reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateUserError is returned when registering an email that is already taken.
type DuplicateUserError struct {
	Email string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

func (e *DuplicateUserError) Is(target error) bool {
	return target == ErrUserExists
}
