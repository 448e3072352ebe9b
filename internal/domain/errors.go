package domain

import "fmt"

// Error types for consistent error handling across the CRM core.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrNoCustomerSelected indicates a purchase operation was attempted before a
// customer was selected or created.
type ErrNoCustomerSelected struct{}

func (e *ErrNoCustomerSelected) Error() string {
	return "select or create a customer first"
}

// ErrConfirmationRequired indicates a destructive action was requested
// without the caller confirming it.
type ErrConfirmationRequired struct {
	Action string
}

func (e *ErrConfirmationRequired) Error() string {
	return fmt.Sprintf("confirmation required: %s", e.Action)
}
