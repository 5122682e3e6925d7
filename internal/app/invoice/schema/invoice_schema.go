package schema

import (
	"strings"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
)

// Form field names as submitted by the invoice forms.
const (
	FieldID         = "id"
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldDate       = "date"
)

const (
	MsgSelectCustomer = "Please select a customer"
	MsgAmountPositive = "Please enter an amount greater than 0"
	MsgSelectStatus   = "Please select an invoice status"
	MsgInvalidID      = "Invalid invoice id"
	MsgInvalidDate    = "Invalid invoice date"
)

// Fields is the typed result of a successful parse. Omitted fields stay zero.
type Fields struct {
	ID         string
	CustomerID string
	Amount     domain.Amount
	Status     domain.Status
	Date       string
}

// FormSchema describes a whole invoice record.
var FormSchema = newSchema().
	field(FieldID, MsgInvalidID, func(raw string, present bool, out *Fields) bool {
		if !present || !nonBlank(raw) {
			return false
		}
		out.ID = strings.TrimSpace(raw)
		return true
	}).
	field(FieldCustomerID, MsgSelectCustomer, func(raw string, present bool, out *Fields) bool {
		if !present || !nonBlank(raw) {
			return false
		}
		out.CustomerID = strings.TrimSpace(raw)
		return true
	}).
	field(FieldAmount, MsgAmountPositive, func(raw string, _ bool, out *Fields) bool {
		a, err := domain.ParseAmount(raw)
		if err != nil {
			return false
		}
		out.Amount = a
		return true
	}).
	field(FieldStatus, MsgSelectStatus, func(raw string, _ bool, out *Fields) bool {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return false
		}
		out.Status = st
		return true
	}).
	field(FieldDate, MsgInvalidDate, func(raw string, present bool, out *Fields) bool {
		if !present {
			return false
		}
		if _, err := domain.ParseDate(raw); err != nil {
			return false
		}
		out.Date = raw
		return true
	})

// CreateInvoice and UpdateInvoice validate user-editable fields only; id and
// date are owned by the system.
var (
	CreateInvoice = FormSchema.Omit(FieldID, FieldDate)
	UpdateInvoice = FormSchema.Omit(FieldID, FieldDate)
)
