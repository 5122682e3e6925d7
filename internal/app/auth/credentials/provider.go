// Package credentials implements email/password sign-in issuing signed
// session tokens.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/clock"
)

// ProviderName is the only sign-in provider this service registers.
const ProviderName = "credentials"

const minPasswordLen = 6

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Provider struct {
	users  contracts.UserRepo
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewProvider(users contracts.UserRepo, secret string, ttl time.Duration, clk clock.Clock) *Provider {
	return &Provider{users: users, secret: []byte(secret), ttl: ttl, clock: clk}
}

// SignIn checks email/password credentials and issues a session.
func (p *Provider) SignIn(ctx context.Context, provider string, creds url.Values) (*domain.Session, error) {
	if provider != ProviderName {
		return nil, &domain.AuthError{Kind: domain.KindConfiguration, Err: fmt.Errorf("unknown provider %q", provider)}
	}

	email, password, ok := parseCredentials(creds)
	if !ok {
		return nil, &domain.AuthError{Kind: domain.KindCredentialsSignin, Err: domain.ErrInvalidCredentials}
	}

	user, err := p.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, &domain.AuthError{Kind: domain.KindCredentialsSignin, Err: domain.ErrInvalidCredentials}
	}
	if err != nil {
		return nil, &domain.AuthError{Kind: domain.KindCallbackRouteError, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &domain.AuthError{Kind: domain.KindCredentialsSignin, Err: domain.ErrInvalidCredentials}
	}

	return p.issue(user)
}

func (p *Provider) issue(user *domain.User) (*domain.Session, error) {
	now := p.clock.Now()
	exp := now.Add(p.ttl)
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &domain.Session{Token: token, UserID: user.ID, Email: user.Email, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify parses a session token and checks signature and expiry.
func (p *Provider) Verify(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrInvalidSession
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSession, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidSession
	}
	return &domain.Session{
		Token:     token,
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func parseCredentials(creds url.Values) (string, string, bool) {
	email := strings.TrimSpace(creds.Get("email"))
	password := creds.Get("password")

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", "", false
	}
	if len(password) < minPasswordLen {
		return "", "", false
	}
	return email, password, true
}
