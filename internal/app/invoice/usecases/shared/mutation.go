package shared

import (
	"context"

	contracts "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

// InvoicesPath is the invoice list view; every successful mutation
// invalidates it and create/update redirect to it.
const InvoicesPath = "/dashboard/invoices"

// User-facing messages.
const (
	MsgInvalidData  = "Invalid data. Please fix the errors and try again."
	MsgCreateFailed = "Database Error: Failed to create invoice"
	MsgUpdateFailed = "Database Error: Failed to update invoice"
	MsgDeleteFailed = "Database Error: Failed to delete invoice"
)

// Operation names reported to the MutationObserver.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Outcome labels reported to the MutationObserver.
const (
	OutcomeRedirect = "redirect"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	OutcomeError    = "error"
	OutcomeDone     = "done"
)

// Observe reports an outcome if an observer is configured.
func Observe(obs contracts.MutationObserver, operation, outcome string) {
	if obs == nil {
		return
	}
	obs.ObserveMutation(operation, outcome)
}

// Revalidate invalidates the list view after a successful write.
// A failed invalidation is logged and otherwise ignored; the write already happened.
func Revalidate(ctx context.Context, cache contracts.Cache, log *logger.Logger, path string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, path); err != nil {
		log.Warn("cache invalidation failed", "path", path, "error", err)
	}
}

// RevalidateAndRedirect invalidates path and ends the interaction there.
func RevalidateAndRedirect(ctx context.Context, cache contracts.Cache, log *logger.Logger, path string) state.Outcome {
	Revalidate(ctx, cache, log, path)
	return state.RedirectTo(path)
}
