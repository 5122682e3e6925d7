package get_invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_invoice"
)

// SQLGetInvoiceQuery reads one invoice through database/sql.
type SQLGetInvoiceQuery struct {
	DB *sql.DB
}

func NewSQLGetInvoiceQuery(db *sql.DB) *SQLGetInvoiceQuery {
	return &SQLGetInvoiceQuery{DB: db}
}

func (q *SQLGetInvoiceQuery) FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceForm, error) {
	var (
		out    dto.InvoiceForm
		amount int64
		date   string
	)
	err := q.DB.QueryRowContext(ctx, m_invoice.SelectSQL, id).
		Scan(&out.ID, &out.CustomerID, &amount, &out.Status, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch invoice %s: %w", domain.ErrPersistence, id, err)
	}
	fill(&out, amount, NormalizeDate(date))
	return &out, nil
}

// SpannerGetInvoiceQuery reads one invoice from Spanner directly.
type SpannerGetInvoiceQuery struct {
	Client *spanner.Client
}

func NewSpannerGetInvoiceQuery(client *spanner.Client) *SpannerGetInvoiceQuery {
	return &SpannerGetInvoiceQuery{Client: client}
}

func (q *SpannerGetInvoiceQuery) FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceForm, error) {
	stmt := spanner.Statement{
		SQL: `SELECT id, customer_id, amount, status, date
		      FROM invoices
		      WHERE id = @id`,
		Params: map[string]interface{}{"id": id},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch invoice %s: %w", domain.ErrPersistence, id, err)
	}

	var (
		out    dto.InvoiceForm
		amount int64
		date   civil.Date
	)
	if err := row.Columns(&out.ID, &out.CustomerID, &amount, &out.Status, &date); err != nil {
		return nil, fmt.Errorf("%w: decode invoice %s: %w", domain.ErrPersistence, id, err)
	}
	fill(&out, amount, date.String())
	return &out, nil
}

// fill converts stored cents back to currency units for the form.
func fill(out *dto.InvoiceForm, cents int64, date string) {
	out.AmountCents = cents
	out.Amount = float64(cents) / 100
	out.Date = date
}

// NormalizeDate trims driver timestamps ("2024-03-09T00:00:00Z") to the
// calendar date.
func NormalizeDate(s string) string {
	if len(s) > len(domain.DateLayout) {
		return s[:len(domain.DateLayout)]
	}
	return s
}
