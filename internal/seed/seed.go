// Package seed loads demo users, customers and invoices.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"golang.org/x/crypto/bcrypt"

	"github.com/murkotick/invoice-dashboard-service/internal/models/m_customer"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_user"
)

type User struct {
	ID, Name, Email, Password string
}

type Customer struct {
	ID, Name, Email, ImageURL string
}

type Invoice struct {
	ID, CustomerID string
	AmountCents    int64
	Status         string
	Date           string
}

var Users = []User{
	{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com", Password: "123456"},
}

var Customers = []Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

var Invoices = []Invoice{
	{ID: "5f0ad4c0-3e0b-4b7e-9d43-6a8e0c5c1a01", CustomerID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", AmountCents: 15795, Status: "pending", Date: "2022-12-06"},
	{ID: "5f0ad4c0-3e0b-4b7e-9d43-6a8e0c5c1a02", CustomerID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", AmountCents: 20348, Status: "pending", Date: "2022-11-14"},
	{ID: "5f0ad4c0-3e0b-4b7e-9d43-6a8e0c5c1a03", CustomerID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", AmountCents: 3040, Status: "paid", Date: "2022-10-29"},
	{ID: "5f0ad4c0-3e0b-4b7e-9d43-6a8e0c5c1a04", CustomerID: "76d65c26-f784-44a2-ac19-586678f7c2f2", AmountCents: 44800, Status: "paid", Date: "2023-09-10"},
	{ID: "5f0ad4c0-3e0b-4b7e-9d43-6a8e0c5c1a05", CustomerID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", AmountCents: 34577, Status: "pending", Date: "2023-08-05"},
}

// Counts reports how many rows of each kind were written.
type Counts struct {
	Users, Customers, Invoices int
}

// SQL seeds db in one transaction. Existing rows are left alone.
func SQL(ctx context.Context, db *sql.DB) (Counts, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Counts{}, fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var c Counts
	for _, u := range Users {
		hash, err := hashPassword(u.Password)
		if err != nil {
			return Counts{}, err
		}
		if _, err := tx.ExecContext(ctx, m_user.SeedSQL, u.ID, u.Name, u.Email, hash); err != nil {
			return Counts{}, fmt.Errorf("seed: user %s: %w", u.Email, err)
		}
		c.Users++
	}
	for _, cu := range Customers {
		if _, err := tx.ExecContext(ctx, m_customer.SeedSQL, cu.ID, cu.Name, cu.Email, cu.ImageURL); err != nil {
			return Counts{}, fmt.Errorf("seed: customer %s: %w", cu.Name, err)
		}
		c.Customers++
	}
	for _, inv := range Invoices {
		if _, err := tx.ExecContext(ctx, m_invoice.SeedSQL, inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date); err != nil {
			return Counts{}, fmt.Errorf("seed: invoice %s: %w", inv.ID, err)
		}
		c.Invoices++
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, fmt.Errorf("seed: commit: %w", err)
	}
	return c, nil
}

// Mutations builds the Spanner upserts for the same data.
func Mutations() ([]*spanner.Mutation, error) {
	var ms []*spanner.Mutation
	for _, u := range Users {
		hash, err := hashPassword(u.Password)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m_user.UpsertMutation(u.ID, u.Name, u.Email, hash))
	}
	for _, cu := range Customers {
		ms = append(ms, m_customer.UpsertMutation(cu.ID, cu.Name, cu.Email, cu.ImageURL))
	}
	for _, inv := range Invoices {
		date, err := civil.ParseDate(inv.Date)
		if err != nil {
			return nil, fmt.Errorf("seed: invoice %s: %w", inv.ID, err)
		}
		ms = append(ms, m_invoice.UpsertMutation(m_invoice.BuildInsertMap(inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, date)))
	}
	return ms, nil
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("seed: hash password: %w", err)
	}
	return string(hash), nil
}
