package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/models/m_user"
)

type SQLUserRepo struct {
	db *sql.DB
}

func NewSQLUserRepo(db *sql.DB) *SQLUserRepo {
	return &SQLUserRepo{db: db}
}

func (r *SQLUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, m_user.SelectByEmailSQL, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Create inserts a user; password must already be hashed.
func (r *SQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, err := r.db.ExecContext(ctx, m_user.InsertSQL, u.ID, u.Name, u.Email, u.Password); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
