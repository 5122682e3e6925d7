package create_invoice

import (
	"context"

	"github.com/google/uuid"

	contracts "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/schema"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/clock"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

// Interactor implements the create-invoice form action.
type Interactor struct {
	Store   contracts.InvoiceStore
	Cache   contracts.Cache
	Clock   clock.Clock
	Log     *logger.Logger
	Metrics contracts.MutationObserver

	// NewID generates invoice identifiers. Defaults to random UUIDs.
	NewID func() string
}

// NewInteractor constructs the interactor.
func NewInteractor(store contracts.InvoiceStore, cache contracts.Cache, clk clock.Clock, log *logger.Logger, metrics contracts.MutationObserver) *Interactor {
	return &Interactor{
		Store:   store,
		Cache:   cache,
		Clock:   clk,
		Log:     log.With("usecase", "create_invoice"),
		Metrics: metrics,
		NewID:   func() string { return uuid.New().String() },
	}
}

// Execute validates the submission, inserts the invoice and redirects to the
// invoice list. The previous state is accepted for form continuity only.
func (it *Interactor) Execute(ctx context.Context, _ state.MutationState, sub schema.Submission) state.Outcome {
	// 1. Validate
	res := schema.CreateInvoice.SafeParse(sub)
	if !res.Success() {
		it.Log.Debug("invalid invoice submission", "fields", len(res.Errors))
		shared.Observe(it.Metrics, shared.OpCreate, shared.OutcomeInvalid)
		return state.Invalid(res.Errors, shared.MsgInvalidData)
	}

	// 2. Build the record: cents, today's date, new id
	inv, err := domain.NewInvoice(it.NewID(), res.Data.CustomerID, res.Data.Amount, res.Data.Status, it.Clock.Now())
	if err != nil {
		it.Log.Error("failed to build invoice", "error", err)
		shared.Observe(it.Metrics, shared.OpCreate, shared.OutcomeFailed)
		return state.Failed(shared.MsgCreateFailed)
	}

	// 3. Persist; failures are reported to the form, not returned
	if err := it.Store.Insert(ctx, inv); err != nil {
		it.Log.Error("failed to create invoice", "invoice_id", inv.ID(), "error", err)
		shared.Observe(it.Metrics, shared.OpCreate, shared.OutcomeFailed)
		return state.Failed(shared.MsgCreateFailed)
	}

	// 4. Invalidate the list view and leave the form
	it.Log.Info("invoice created", "invoice_id", inv.ID(), "amount_cents", inv.Amount().Cents())
	shared.Observe(it.Metrics, shared.OpCreate, shared.OutcomeRedirect)
	return shared.RevalidateAndRedirect(ctx, it.Cache, it.Log, shared.InvoicesPath)
}
