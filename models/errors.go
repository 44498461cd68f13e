package models

import "fmt"

// ValidationError reports malformed or missing input. The request is rejected
// with no state change.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to a school/customer/product/order id
// that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// InsufficientStockError reports a sales create/edit that would drive a
// product's stock negative. The message names the offending product and the
// shortfall.
type InsufficientStockError struct {
	ProductID int64
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (id %d): requested %d, available %d",
		e.Product, e.ProductID, e.Requested, e.Available)
}

// AlreadyCompletedError reports an attempt to complete a production order
// that is already in the terminal state. Stock must not be credited twice.
type AlreadyCompletedError struct {
	OrderID int64
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("production order %d is already completed", e.OrderID)
}

// ReferentialIntegrityError reports an attempt to delete an entity that still
// has dependent rows (e.g. a customer that owns orders).
type ReferentialIntegrityError struct {
	Entity     string
	ID         int64
	Dependents string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s with id %d: %s still reference it",
		e.Entity, e.ID, e.Dependents)
}
