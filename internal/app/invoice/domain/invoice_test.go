package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAmount(t *testing.T, raw string) Amount {
	t.Helper()
	a, err := ParseAmount(raw)
	require.NoError(t, err)
	return a
}

func TestNewInvoice_StampsUTCDate(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, loc)

	inv, err := NewInvoice("inv-1", " c1 ", mustAmount(t, "10.50"), StatusPending, now)
	require.NoError(t, err)

	assert.Equal(t, "inv-1", inv.ID())
	assert.Equal(t, "c1", inv.CustomerID())
	assert.Equal(t, int64(1050), inv.Amount().Cents())
	assert.Equal(t, StatusPending, inv.Status())
	assert.Equal(t, "2024-03-10", inv.Date())
}

func TestNewInvoice_Validation(t *testing.T) {
	now := time.Now()
	amt := mustAmount(t, "1")

	_, err := NewInvoice("", "c1", amt, StatusPaid, now)
	assert.ErrorIs(t, err, ErrEmptyInvoiceID)

	_, err = NewInvoice("inv", "  ", amt, StatusPaid, now)
	assert.ErrorIs(t, err, ErrEmptyCustomerID)

	_, err = NewInvoice("inv", "c1", Amount{}, StatusPaid, now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewInvoice("inv", "c1", amt, Status("overdue"), now)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewRevision(t *testing.T) {
	rev, err := NewRevision("inv-1", "c2", mustAmount(t, "3"), StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, "inv-1", rev.InvoiceID)
	assert.Equal(t, "c2", rev.CustomerID)
	assert.Equal(t, int64(300), rev.Amount.Cents())

	_, err = NewRevision("", "c2", mustAmount(t, "3"), StatusPaid)
	assert.ErrorIs(t, err, ErrEmptyInvoiceID)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid"} {
		got, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}
	for _, s := range []string{"", "Paid", "PENDING", "bad", " paid"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-02-29")
	require.NoError(t, err)

	for _, s := range []string{"2023-02-29", "2024/01/01", "2024-1-1", ""} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrInvalidDate, s)
	}
}
