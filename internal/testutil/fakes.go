// Package testutil holds in-memory collaborators shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
)

// InvoiceStore is an in-memory contracts.InvoiceStore that records calls.
// Setting Err makes every call fail with Err wrapped in domain.ErrPersistence.
type InvoiceStore struct {
	mu       sync.Mutex
	Invoices map[string]*domain.Invoice
	Calls    []string
	Err      error
}

func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{Invoices: map[string]*domain.Invoice{}}
}

func (s *InvoiceStore) Insert(_ context.Context, inv *domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, "insert:"+inv.ID())
	if s.Err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, s.Err)
	}
	s.Invoices[inv.ID()] = inv
	return nil
}

func (s *InvoiceStore) Update(_ context.Context, rev *domain.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, "update:"+rev.InvoiceID)
	if s.Err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, s.Err)
	}
	cur, ok := s.Invoices[rev.InvoiceID]
	if !ok {
		return nil
	}
	s.Invoices[rev.InvoiceID] = domain.ReconstructInvoice(cur.ID(), rev.CustomerID, rev.Amount, rev.Status, cur.Date())
	return nil
}

func (s *InvoiceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, "delete:"+id)
	if s.Err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, s.Err)
	}
	delete(s.Invoices, id)
	return nil
}

// Get returns a stored invoice.
func (s *InvoiceStore) Get(id string) (*domain.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.Invoices[id]
	return inv, ok
}

// FetchInvoiceByID lets the fake double as a read model.
func (s *InvoiceStore) FetchInvoiceByID(_ context.Context, id string) (*dto.InvoiceForm, error) {
	inv, ok := s.Get(id)
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return &dto.InvoiceForm{
		ID:          inv.ID(),
		CustomerID:  inv.CustomerID(),
		Amount:      inv.Amount().Float64(),
		AmountCents: inv.Amount().Cents(),
		Status:      string(inv.Status()),
		Date:        inv.Date(),
	}, nil
}

// FetchCustomers returns Customers.
func (s *InvoiceStore) FetchCustomers(context.Context) ([]*dto.CustomerField, error) {
	return []*dto.CustomerField{{ID: "c1", Name: "Amy Burns"}, {ID: "c2", Name: "Balazs Orban"}}, nil
}

// Cache records invalidated paths.
type Cache struct {
	mu          sync.Mutex
	Invalidated []string
	Err         error
}

func (c *Cache) Invalidate(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated = append(c.Invalidated, path)
	return c.Err
}

// Paths returns a copy of the invalidated paths.
func (c *Cache) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.Invalidated...)
}

// Observer counts mutation outcomes as "operation/outcome".
type Observer struct {
	mu     sync.Mutex
	Counts map[string]int
}

func (o *Observer) ObserveMutation(operation, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Counts == nil {
		o.Counts = map[string]int{}
	}
	o.Counts[operation+"/"+outcome]++
}

func (o *Observer) Count(operation, outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Counts[operation+"/"+outcome]
}
