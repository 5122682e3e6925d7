package delete_invoice

import (
	"context"
	"fmt"

	contracts "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/contracts"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

// Interactor implements the delete-invoice action.
type Interactor struct {
	Store   contracts.InvoiceStore
	Cache   contracts.Cache
	Log     *logger.Logger
	Metrics contracts.MutationObserver
}

func NewInteractor(store contracts.InvoiceStore, cache contracts.Cache, log *logger.Logger, metrics contracts.MutationObserver) *Interactor {
	return &Interactor{
		Store:   store,
		Cache:   cache,
		Log:     log.With("usecase", "delete_invoice"),
		Metrics: metrics,
	}
}

// Execute deletes invoice id and invalidates the list view.
//
// Store failures are returned to the caller unchanged in kind (they still
// match domain.ErrPersistence); the transport decides how to surface them.
func (it *Interactor) Execute(ctx context.Context, id string) error {
	if err := it.Store.Delete(ctx, id); err != nil {
		shared.Observe(it.Metrics, shared.OpDelete, shared.OutcomeError)
		return fmt.Errorf("delete invoice %q: %w", id, err)
	}

	it.Log.Info("invoice deleted", "invoice_id", id)
	shared.Observe(it.Metrics, shared.OpDelete, shared.OutcomeDone)
	shared.Revalidate(ctx, it.Cache, it.Log, shared.InvoicesPath)
	return nil
}
