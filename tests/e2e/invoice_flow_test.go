package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/seed"
)

func postForm(t *testing.T, c *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.PostForm(srv.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, c *http.Client, path string) *http.Response {
	t.Helper()
	resp, err := c.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func login(t *testing.T) *http.Client {
	t.Helper()
	c := newClient()
	resp := postForm(t, c, "/login", url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	return c
}

func latestInvoiceID(t *testing.T, customerID string, cents int64) string {
	t.Helper()
	var id string
	err := db.QueryRow(`SELECT id FROM invoices WHERE customer_id = $1 AND amount = $2`, customerID, cents).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestInvoiceLifecycle(t *testing.T) {
	c := login(t)
	customer := seed.Customers[0].ID
	before, err := viewCache.Version(context.Background(), "/dashboard/invoices")
	require.NoError(t, err)

	// Create.
	resp := postForm(t, c, "/dashboard/invoices", url.Values{
		"customerId": {customer}, "amount": {"123.45"}, "status": {"pending"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/invoices", resp.Header.Get("Location"))
	id := latestInvoiceID(t, customer, 12345)

	after, err := viewCache.Version(context.Background(), "/dashboard/invoices")
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	// Edit form data.
	resp = get(t, c, "/dashboard/invoices/"+id+"/edit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var form struct {
		Invoice   dto.InvoiceForm     `json:"invoice"`
		Customers []dto.CustomerField `json:"customers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&form))
	assert.Equal(t, 123.45, form.Invoice.Amount)
	assert.Equal(t, clk.Now().Format("2006-01-02"), form.Invoice.Date)
	assert.Len(t, form.Customers, len(seed.Customers))
	assert.Equal(t, "Amy Burns", form.Customers[0].Name)

	// Update.
	other := seed.Customers[1].ID
	resp = postForm(t, c, "/dashboard/invoices/"+id+"/edit", url.Values{
		"customerId": {other}, "amount": {"0.015"}, "status": {"paid"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var (
		gotID, gotCustomer, gotStatus, gotDate string
		gotAmount                              int64
	)
	require.NoError(t, db.QueryRow(m_invoice.SelectSQL, id).Scan(&gotID, &gotCustomer, &gotAmount, &gotStatus, &gotDate))
	assert.Equal(t, other, gotCustomer)
	assert.Equal(t, int64(2), gotAmount)
	assert.Equal(t, "paid", gotStatus)
	assert.Equal(t, form.Invoice.Date, gotDate)

	// Delete.
	resp = postForm(t, c, "/dashboard/invoices/"+id+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp = get(t, c, "/dashboard/invoices/"+id+"/edit")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidSubmissionIsRejected(t *testing.T) {
	c := login(t)
	resp := postForm(t, c, "/dashboard/invoices", url.Values{
		"customerId": {""}, "amount": {"-5"}, "status": {"bad"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var st state.MutationState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.ElementsMatch(t, []string{"customerId", "amount", "status"}, keys(st.Errors))
}

func TestDashboardRequiresLogin(t *testing.T) {
	c := newClient()
	resp := postForm(t, c, "/dashboard/invoices", url.Values{"customerId": {"x"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login"))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	c := newClient()
	resp := postForm(t, c, "/login", url.Values{"email": {"user@nextmail.com"}, "password": {"nope-nope"}})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Invalid credentials."}`, string(body))
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
