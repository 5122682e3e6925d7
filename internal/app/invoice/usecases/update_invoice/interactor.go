package update_invoice

import (
	"context"

	contracts "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/schema"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

// Interactor implements the update-invoice form action.
// Concurrent updates to one invoice are last-write-wins.
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
		Log:     log.With("usecase", "update_invoice"),
		Metrics: metrics,
	}
}

// Execute replaces customer, amount and status of invoice id. The id is bound
// by the caller and never read from the submission.
func (it *Interactor) Execute(ctx context.Context, id string, _ state.MutationState, sub schema.Submission) state.Outcome {
	res := schema.UpdateInvoice.SafeParse(sub)
	if !res.Success() {
		it.Log.Debug("invalid invoice submission", "invoice_id", id, "fields", len(res.Errors))
		shared.Observe(it.Metrics, shared.OpUpdate, shared.OutcomeInvalid)
		return state.Invalid(res.Errors, shared.MsgInvalidData)
	}

	rev, err := domain.NewRevision(id, res.Data.CustomerID, res.Data.Amount, res.Data.Status)
	if err != nil {
		it.Log.Error("failed to build invoice revision", "invoice_id", id, "error", err)
		shared.Observe(it.Metrics, shared.OpUpdate, shared.OutcomeFailed)
		return state.Failed(shared.MsgUpdateFailed)
	}

	if err := it.Store.Update(ctx, rev); err != nil {
		it.Log.Error("failed to update invoice", "invoice_id", id, "error", err)
		shared.Observe(it.Metrics, shared.OpUpdate, shared.OutcomeFailed)
		return state.Failed(shared.MsgUpdateFailed)
	}

	it.Log.Info("invoice updated", "invoice_id", id)
	shared.Observe(it.Metrics, shared.OpUpdate, shared.OutcomeRedirect)
	return shared.RevalidateAndRedirect(ctx, it.Cache, it.Log, shared.InvoicesPath)
}
