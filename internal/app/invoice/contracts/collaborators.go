package contracts

import (
	"context"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
)

// Cache marks rendered view paths stale so they are recomputed on next access.
type Cache interface {
	Invalidate(ctx context.Context, path string) error
}

// ReadModel is the read collaborator the invoice forms depend on.
type ReadModel interface {
	// FetchInvoiceByID returns domain.ErrInvoiceNotFound when absent.
	FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceForm, error)
	FetchCustomers(ctx context.Context) ([]*dto.CustomerField, error)
}

// MutationObserver records the outcome of each mutation attempt.
type MutationObserver interface {
	ObserveMutation(operation, outcome string)
}
