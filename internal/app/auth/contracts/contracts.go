package contracts

import (
	"context"
	"net/url"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
)

// Authenticator signs a user in with a named provider. Recognized faults
// are *domain.AuthError.
type Authenticator interface {
	SignIn(ctx context.Context, provider string, credentials url.Values) (*domain.Session, error)
}

// SessionVerifier validates a session token issued by SignIn.
type SessionVerifier interface {
	Verify(token string) (*domain.Session, error)
}

// UserRepo looks users up by email. Absence is domain.ErrUserNotFound.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
