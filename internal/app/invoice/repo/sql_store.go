package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_invoice"
)

// SQLStore is the database/sql implementation of contracts.InvoiceStore.
// It runs against Postgres (pgx stdlib driver) and SQLite alike.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Insert(ctx context.Context, inv *domain.Invoice) error {
	_, err := s.db.ExecContext(ctx, m_invoice.InsertSQL,
		inv.ID(), inv.CustomerID(), inv.Amount().Cents(), string(inv.Status()), inv.Date())
	if err != nil {
		return fmt.Errorf("%w: insert invoice %s: %w", domain.ErrPersistence, inv.ID(), err)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, rev *domain.Revision) error {
	// A statement matching no row is not an error.
	_, err := s.db.ExecContext(ctx, m_invoice.UpdateSQL,
		rev.CustomerID, rev.Amount.Cents(), string(rev.Status), rev.InvoiceID)
	if err != nil {
		return fmt.Errorf("%w: update invoice %s: %w", domain.ErrPersistence, rev.InvoiceID, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, m_invoice.DeleteSQL, id); err != nil {
		return fmt.Errorf("%w: delete invoice %s: %w", domain.ErrPersistence, id, err)
	}
	return nil
}
