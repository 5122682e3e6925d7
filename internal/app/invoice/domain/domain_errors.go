package domain

import "errors"

// Store errors
var (
	// ErrInvoiceNotFound indicates that an invoice with the given ID does not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrPersistence wraps every failure reported by the invoice store.
	ErrPersistence = errors.New("invoice store failure")
)

// Validation errors
var (
	ErrEmptyInvoiceID  = errors.New("invoice id cannot be empty")
	ErrEmptyCustomerID = errors.New("customer id cannot be empty")
	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrInvalidStatus   = errors.New("status must be pending or paid")
	ErrInvalidDate     = errors.New("date must be formatted as YYYY-MM-DD")
)
