package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
)

type SpannerUserRepo struct {
	client *spanner.Client
}

func NewSpannerUserRepo(client *spanner.Client) *SpannerUserRepo {
	return &SpannerUserRepo{client: client}
}

func (r *SpannerUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT id, name, email, password FROM users WHERE email = @email`,
		Params: map[string]interface{}{"email": email},
	}
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	var u domain.User
	if err := row.Columns(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
