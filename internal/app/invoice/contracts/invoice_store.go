package contracts

import (
	"context"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
)

// InvoiceStore is the write-side persistence boundary for invoices.
// Implementations use parameterized statements only and wrap every failure
// with domain.ErrPersistence.
type InvoiceStore interface {
	// Insert persists a new invoice.
	Insert(ctx context.Context, inv *domain.Invoice) error

	// Update replaces customer, amount and status of an existing invoice,
	// leaving id and date untouched. Updating a missing id is not an error.
	Update(ctx context.Context, rev *domain.Revision) error

	// Delete removes the invoice. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
