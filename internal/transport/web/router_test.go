package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/credentials"
	authdomain "github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/usecases/authenticate"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/get_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/list_customers"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/create_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/delete_invoice"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/update_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/observability"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/clock"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
	"github.com/murkotick/invoice-dashboard-service/internal/testutil"
)

type memUsers struct {
	byEmail map[string]*authdomain.User
	err     error
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	return u, nil
}

type fixture struct {
	router   *gin.Engine
	store    *testutil.InvoiceStore
	cache    *testutil.Cache
	users    *memUsers
	provider *credentials.Provider
	token    string
	logs     *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.DebugLevel)
	log := logger.NewWithCore(core)
	clk := clock.NewFake(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	store := testutil.NewInvoiceStore()
	cache := &testutil.Cache{}
	metrics := observability.New(nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &memUsers{byEmail: map[string]*authdomain.User{
		"user@nextmail.com": {ID: "u1", Email: "user@nextmail.com", Password: string(hash)},
	}}
	provider := credentials.NewProvider(users, "secret", time.Hour, clk)

	create := create_invoice.NewInteractor(store, cache, clk, log, metrics)
	create.NewID = func() string { return "inv-new" }

	r := NewRouter(RouterConfig{
		Log:     log,
		Metrics: metrics,
		InvoiceHandler: NewInvoiceHandler(log, Commands{
			Create: create,
			Update: update_invoice.NewInteractor(store, cache, log, metrics),
			Delete: delete_invoice.NewInteractor(store, cache, log, metrics),
		}, Queries{
			Get:       get_invoice.NewHandler(store),
			Customers: list_customers.NewHandler(store),
		}),
		AuthHandler:    NewAuthHandler(log, authenticate.NewInteractor(provider, log), clk, false),
		AuthMiddleware: NewAuthMiddleware(log, provider),
	})

	session, err := provider.SignIn(context.Background(), credentials.ProviderName,
		url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}})
	require.NoError(t, err)

	return &fixture{router: r, store: store, cache: cache, users: users, provider: provider, token: session.Token, logs: logs}
}

func (f *fixture) do(method, path string, form url.Values, authed bool) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: f.token})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) seed(t *testing.T, id string) {
	t.Helper()
	amt, err := domain.NewAmountFromCents(2000)
	require.NoError(t, err)
	f.store.Invoices[id] = domain.ReconstructInvoice(id, "c1", amt, domain.StatusPending, "2023-12-06")
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) state.MutationState {
	t.Helper()
	var st state.MutationState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestHealthcheck(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthcheck", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreate_RedirectsAndStoresInvoice(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/dashboard/invoices",
		url.Values{"customerId": {"c1"}, "amount": {"10.50"}, "status": {"pending"}}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))

	inv, ok := f.store.Get("inv-new")
	require.True(t, ok)
	assert.Equal(t, int64(1050), inv.Amount().Cents())
	assert.Equal(t, "2024-06-01", inv.Date())
	assert.Equal(t, []string{"/dashboard/invoices"}, f.cache.Paths())
}

func TestCreate_ValidationErrorsAre422(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/dashboard/invoices",
		url.Values{"customerId": {""}, "amount": {"-5"}, "status": {"bad"}}, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	st := decodeState(t, rec)
	assert.Len(t, st.Errors, 3)
	require.NotNil(t, st.Message)
	assert.Equal(t, shared.MsgInvalidData, *st.Message)
	assert.Empty(t, f.store.Calls)
}

func TestCreate_StoreFailureIs500(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection reset")
	rec := f.do(http.MethodPost, "/dashboard/invoices",
		url.Values{"customerId": {"c1"}, "amount": {"1"}, "status": {"paid"}}, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	st := decodeState(t, rec)
	require.NotNil(t, st.Message)
	assert.Equal(t, shared.MsgCreateFailed, *st.Message)
	assert.Empty(t, f.cache.Paths())
}

func TestUpdate_UsesPathID(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "inv-1")

	rec := f.do(http.MethodPost, "/dashboard/invoices/inv-1/edit",
		url.Values{"id": {"other"}, "customerId": {"c2"}, "amount": {"3.333"}, "status": {"paid"}}, true)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	inv, ok := f.store.Get("inv-1")
	require.True(t, ok)
	assert.Equal(t, "c2", inv.CustomerID())
	assert.Equal(t, int64(333), inv.Amount().Cents())
	assert.Equal(t, "2023-12-06", inv.Date())
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "inv-1")

	rec := f.do(http.MethodPost, "/dashboard/invoices/inv-1/delete", nil, true)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, ok := f.store.Get("inv-1")
	assert.False(t, ok)
	assert.Equal(t, []string{"/dashboard/invoices"}, f.cache.Paths())
}

func TestDelete_StoreFailureIs500(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection reset")

	rec := f.do(http.MethodPost, "/dashboard/invoices/inv-1/delete", nil, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Database Error: Failed to delete invoice"}`, rec.Body.String())
	assert.Empty(t, f.cache.Paths())
}

func TestDelete_StoreFailureCauseIsLogged(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("pg: connection reset")

	rec := f.do(http.MethodPost, "/dashboard/invoices/inv-1/delete", nil, true)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := f.logs.FilterMessage("delete invoice failed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "inv-1", ctx["invoice_id"])
	assert.Contains(t, ctx["error"], "pg: connection reset")
}

func TestEditForm(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "inv-1")

	rec := f.do(http.MethodGet, "/dashboard/invoices/inv-1/edit", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var body editFormReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "inv-1", body.Invoice.ID)
	assert.Equal(t, 20.0, body.Invoice.Amount)
	assert.Len(t, body.Customers, 2)

	rec = f.do(http.MethodGet, "/dashboard/invoices/missing/edit", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateForm(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/dashboard/invoices/create", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amy Burns")
}

func TestDashboard_RequiresSession(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/dashboard/invoices",
		url.Values{"customerId": {"c1"}, "amount": {"1"}, "status": {"paid"}}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirectTo=%2Fdashboard%2Finvoices", rec.Header().Get("Location"))
	assert.Empty(t, f.store.Calls)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices/create", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	api := httptest.NewRecorder()
	f.router.ServeHTTP(api, req)
	assert.Equal(t, http.StatusUnauthorized, api.Code)

	req = httptest.NewRequest(http.MethodGet, "/dashboard/invoices/create", nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	ok := httptest.NewRecorder()
	f.router.ServeHTTP(ok, req)
	assert.Equal(t, http.StatusOK, ok.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/login", url.Values{
		"email": {"user@nextmail.com"}, "password": {"123456"}, "redirectTo": {"/dashboard/invoices"},
	}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	_, err := f.provider.Verify(session.Value)
	assert.NoError(t, err)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/login", url.Values{"email": {"user@nextmail.com"}, "password": {"wrong-pass"}}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials."}`, rec.Body.String())

	f.users.err = errors.New("db down")
	rec = f.do(http.MethodPost, "/login", url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Something went wrong."}`, rec.Body.String())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/logout", nil, true)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "session=;")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodPost, "/dashboard/invoices", url.Values{"customerId": {""}}, true)

	rec := f.do(http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `invoice_mutations_total{operation="create",outcome="invalid"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
