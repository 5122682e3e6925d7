package queries

import (
	"context"
	"database/sql"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/get_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/list_customers"
)

type invoiceQuery interface {
	FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceForm, error)
}

type customersQuery interface {
	FetchCustomers(ctx context.Context) ([]*dto.CustomerField, error)
}

// ReadModel satisfies contracts.ReadModel by composing the individual
// query implementations for one backend.
type ReadModel struct {
	getQ  invoiceQuery
	listQ customersQuery
}

func NewSQLReadModel(db *sql.DB) *ReadModel {
	return &ReadModel{
		getQ:  get_invoice.NewSQLGetInvoiceQuery(db),
		listQ: list_customers.NewSQLListCustomersQuery(db),
	}
}

func NewSpannerReadModel(client *spanner.Client) *ReadModel {
	return &ReadModel{
		getQ:  get_invoice.NewSpannerGetInvoiceQuery(client),
		listQ: list_customers.NewSpannerListCustomersQuery(client),
	}
}

func (rm *ReadModel) FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceForm, error) {
	return rm.getQ.FetchInvoiceByID(ctx, id)
}

func (rm *ReadModel) FetchCustomers(ctx context.Context) ([]*dto.CustomerField, error) {
	return rm.listQ.FetchCustomers(ctx)
}
