package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/committer"
)

// PlanApplier commits a mutation plan. *committer.Adapter satisfies it.
type PlanApplier interface {
	Apply(ctx context.Context, plan *committer.Plan) error
}

// SpannerStore is the Cloud Spanner implementation of contracts.InvoiceStore.
// It only builds mutations; the committer applies them.
type SpannerStore struct {
	committer PlanApplier
}

func NewSpannerStore(c PlanApplier) *SpannerStore {
	return &SpannerStore{committer: c}
}

// insertMutation is split out so tests can inspect mutations without a client.
func insertMutation(inv *domain.Invoice) (*spanner.Mutation, error) {
	date, err := civil.ParseDate(inv.Date())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDate, err)
	}
	values := m_invoice.BuildInsertMap(inv.ID(), inv.CustomerID(), inv.Amount().Cents(), string(inv.Status()), date)
	return m_invoice.InsertMutation(values), nil
}

func updateMutation(rev *domain.Revision) *spanner.Mutation {
	values := m_invoice.BuildUpdateMap(rev.CustomerID, rev.Amount.Cents(), string(rev.Status))
	return m_invoice.UpdateMutation(rev.InvoiceID, values)
}

func (s *SpannerStore) Insert(ctx context.Context, inv *domain.Invoice) error {
	m, err := insertMutation(inv)
	if err != nil {
		return fmt.Errorf("%w: insert invoice %s: %w", domain.ErrPersistence, inv.ID(), err)
	}
	if err := s.committer.Apply(ctx, committer.NewPlan(m)); err != nil {
		return fmt.Errorf("%w: insert invoice %s: %w", domain.ErrPersistence, inv.ID(), err)
	}
	return nil
}

func (s *SpannerStore) Update(ctx context.Context, rev *domain.Revision) error {
	err := s.committer.Apply(ctx, committer.NewPlan(updateMutation(rev)))
	// An update mutation on a missing row fails with NotFound; like the SQL
	// store, a missing invoice is left absent and the update succeeds.
	if err == nil || spanner.ErrCode(err) == codes.NotFound {
		return nil
	}
	return fmt.Errorf("%w: update invoice %s: %w", domain.ErrPersistence, rev.InvoiceID, err)
}

func (s *SpannerStore) Delete(ctx context.Context, id string) error {
	if err := s.committer.Apply(ctx, committer.NewPlan(m_invoice.DeleteMutation(id))); err != nil {
		return fmt.Errorf("%w: delete invoice %s: %w", domain.ErrPersistence, id, err)
	}
	return nil
}
