package list_customers

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_customer"
)

// SQLListCustomersQuery lists customers through database/sql, ordered by name.
type SQLListCustomersQuery struct {
	DB *sql.DB
}

func NewSQLListCustomersQuery(db *sql.DB) *SQLListCustomersQuery {
	return &SQLListCustomersQuery{DB: db}
}

func (q *SQLListCustomersQuery) FetchCustomers(ctx context.Context) ([]*dto.CustomerField, error) {
	rows, err := q.DB.QueryContext(ctx, m_customer.ListSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch customers: %w", domain.ErrPersistence, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*dto.CustomerField, 0)
	for rows.Next() {
		var c dto.CustomerField
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: scan customer: %w", domain.ErrPersistence, err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: fetch customers: %w", domain.ErrPersistence, err)
	}
	return out, nil
}

// SpannerListCustomersQuery lists customers from Spanner, ordered by name.
type SpannerListCustomersQuery struct {
	Client *spanner.Client
}

func NewSpannerListCustomersQuery(client *spanner.Client) *SpannerListCustomersQuery {
	return &SpannerListCustomersQuery{Client: client}
}

func (q *SpannerListCustomersQuery) FetchCustomers(ctx context.Context) ([]*dto.CustomerField, error) {
	iter := q.Client.Single().Query(ctx, spanner.Statement{SQL: m_customer.ListSQL})
	defer iter.Stop()

	out := make([]*dto.CustomerField, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: fetch customers: %w", domain.ErrPersistence, err)
		}
		var c dto.CustomerField
		if err := row.Columns(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: decode customer: %w", domain.ErrPersistence, err)
		}
		out = append(out, &c)
	}
	return out, nil
}
