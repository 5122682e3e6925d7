package update_invoice

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/schema"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
	"github.com/murkotick/invoice-dashboard-service/internal/testutil"
)

func seeded(t *testing.T) (*Interactor, *testutil.InvoiceStore, *testutil.Cache) {
	t.Helper()
	store := testutil.NewInvoiceStore()
	amt, err := domain.NewAmountFromCents(2000)
	require.NoError(t, err)
	store.Invoices["inv-1"] = domain.ReconstructInvoice("inv-1", "c1", amt, domain.StatusPending, "2023-12-06")

	cache := &testutil.Cache{}
	return NewInteractor(store, cache, logger.Nop(), nil), store, cache
}

func TestUpdateInvoice_ReplacesEditableFieldsOnly(t *testing.T) {
	it, store, cache := seeded(t)

	sub := schema.Submission(url.Values{
		"id":         {"inv-other"},
		"date":       {"1999-01-01"},
		"customerId": {"c2"},
		"amount":     {"99.99"},
		"status":     {"paid"},
	})
	out := it.Execute(context.Background(), "inv-1", state.MutationState{}, sub)

	require.True(t, out.IsRedirect())
	assert.Equal(t, shared.InvoicesPath, out.Redirect)

	inv, ok := store.Get("inv-1")
	require.True(t, ok)
	assert.Equal(t, "inv-1", inv.ID())
	assert.Equal(t, "2023-12-06", inv.Date())
	assert.Equal(t, "c2", inv.CustomerID())
	assert.Equal(t, int64(9999), inv.Amount().Cents())
	assert.Equal(t, domain.StatusPaid, inv.Status())

	_, exists := store.Get("inv-other")
	assert.False(t, exists)
	assert.Equal(t, []string{shared.InvoicesPath}, cache.Paths())
}

func TestUpdateInvoice_InvalidInputDoesNotTouchStore(t *testing.T) {
	it, store, cache := seeded(t)

	sub := schema.Submission(url.Values{
		"customerId": {""},
		"amount":     {"-5"},
		"status":     {"bad"},
	})
	out := it.Execute(context.Background(), "inv-1", state.MutationState{}, sub)

	require.False(t, out.IsRedirect())
	require.NotNil(t, out.State)
	assert.Len(t, out.State.Errors, 3)
	assert.Contains(t, out.State.Errors, "customerId")
	assert.Contains(t, out.State.Errors, "amount")
	assert.Contains(t, out.State.Errors, "status")
	assert.Equal(t, shared.MsgInvalidData, *out.State.Message)

	assert.Empty(t, store.Calls)
	assert.Empty(t, cache.Paths())
}

func TestUpdateInvoice_StoreFailure(t *testing.T) {
	it, store, cache := seeded(t)
	store.Err = errors.New("deadlock detected")

	sub := schema.Submission(url.Values{"customerId": {"c2"}, "amount": {"1"}, "status": {"paid"}})
	out := it.Execute(context.Background(), "inv-1", state.MutationState{}, sub)

	require.NotNil(t, out.State)
	assert.Nil(t, out.State.Errors)
	assert.Equal(t, "Database Error: Failed to update invoice", *out.State.Message)
	assert.Empty(t, cache.Paths())
}

func TestUpdateInvoice_MissingInvoiceRedirects(t *testing.T) {
	it, store, cache := seeded(t)

	sub := schema.Submission(url.Values{"customerId": {"c2"}, "amount": {"5"}, "status": {"paid"}})
	out := it.Execute(context.Background(), "no-such", state.MutationState{}, sub)

	assert.True(t, out.IsRedirect())
	assert.Equal(t, shared.InvoicesPath, out.Redirect)
	assert.Nil(t, out.State)
	assert.Equal(t, []string{shared.InvoicesPath}, cache.Paths())

	_, ok := store.Get("no-such")
	assert.False(t, ok)
	assert.Len(t, store.Invoices, 1)
}
