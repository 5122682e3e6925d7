package domain

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format invoices are stamped with.
const DateLayout = "2006-01-02"

// Status is the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// ParseStatus accepts exactly one of the recognized status values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Invoice is a billing record linking a customer, an amount, a status and a date.
type Invoice struct {
	id         string
	customerID string
	amount     Amount
	status     Status
	date       string
}

// NewInvoice creates an invoice dated today (UTC) relative to now.
func NewInvoice(id, customerID string, amount Amount, status Status, now time.Time) (*Invoice, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyInvoiceID
	}
	if err := validateCustomerID(customerID); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	return &Invoice{
		id:         id,
		customerID: strings.TrimSpace(customerID),
		amount:     amount,
		status:     status,
		date:       now.UTC().Format(DateLayout),
	}, nil
}

// ReconstructInvoice rebuilds an Invoice from persisted state.
func ReconstructInvoice(id, customerID string, amount Amount, status Status, date string) *Invoice {
	return &Invoice{
		id:         id,
		customerID: customerID,
		amount:     amount,
		status:     status,
		date:       date,
	}
}

func (i *Invoice) ID() string         { return i.id }
func (i *Invoice) CustomerID() string { return i.customerID }
func (i *Invoice) Amount() Amount     { return i.amount }
func (i *Invoice) Status() Status     { return i.status }
func (i *Invoice) Date() string       { return i.date }

// Revision carries the replaceable fields of an existing invoice.
// ID and date are never part of a revision.
type Revision struct {
	InvoiceID  string
	CustomerID string
	Amount     Amount
	Status     Status
}

// NewRevision validates the replacement values for invoice id.
func NewRevision(id, customerID string, amount Amount, status Status) (*Revision, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyInvoiceID
	}
	if err := validateCustomerID(customerID); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	return &Revision{
		InvoiceID:  id,
		CustomerID: strings.TrimSpace(customerID),
		Amount:     amount,
		Status:     status,
	}, nil
}

// ParseDate checks s is an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func validateCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return ErrEmptyCustomerID
	}
	return nil
}
