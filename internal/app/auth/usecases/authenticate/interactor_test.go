package authenticate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

type stubAuth struct {
	session  *domain.Session
	err      error
	provider string
	creds    url.Values
}

func (s *stubAuth) SignIn(_ context.Context, provider string, creds url.Values) (*domain.Session, error) {
	s.provider, s.creds = provider, creds
	return s.session, s.err
}

func loginForm(extra ...string) url.Values {
	v := url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}}
	for i := 0; i+1 < len(extra); i += 2 {
		v.Set(extra[i], extra[i+1])
	}
	return v
}

func TestAuthenticate_Success(t *testing.T) {
	auth := &stubAuth{session: &domain.Session{Token: "tok", UserID: "u1"}}
	it := NewInteractor(auth, logger.Nop())

	out, err := it.Execute(context.Background(), nil, loginForm())
	require.NoError(t, err)
	assert.True(t, out.IsRedirect())
	assert.Equal(t, DefaultRedirect, out.Redirect)
	assert.Nil(t, out.Message)
	assert.Equal(t, "tok", out.Session.Token)
	assert.Equal(t, "credentials", auth.provider)
	assert.Equal(t, "user@nextmail.com", auth.creds.Get("email"))
}

func TestAuthenticate_RedirectTo(t *testing.T) {
	cases := map[string]string{
		"/dashboard/invoices": "/dashboard/invoices",
		"https://evil.test":   DefaultRedirect,
		"//evil.test":         DefaultRedirect,
		`/\evil.test`:         DefaultRedirect,
		"":                    DefaultRedirect,
	}
	for raw, want := range cases {
		it := NewInteractor(&stubAuth{session: &domain.Session{UserID: "u1"}}, logger.Nop())
		out, err := it.Execute(context.Background(), nil, loginForm(FieldRedirectTo, raw))
		require.NoError(t, err)
		assert.Equal(t, want, out.Redirect, raw)
	}
}

func TestAuthenticate_RecognizedFaults(t *testing.T) {
	cases := []struct {
		kind string
		want string
	}{
		{domain.KindCredentialsSignin, MsgInvalidCredentials},
		{domain.KindCallbackRouteError, MsgSomethingWentWrong},
		{domain.KindConfiguration, MsgSomethingWentWrong},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			fault := fmt.Errorf("signin: %w", &domain.AuthError{Kind: tc.kind})
			it := NewInteractor(&stubAuth{err: fault}, logger.Nop())

			out, err := it.Execute(context.Background(), nil, loginForm())
			require.NoError(t, err)
			require.NotNil(t, out.Message)
			assert.Equal(t, tc.want, *out.Message)
			assert.False(t, out.IsRedirect())
			assert.Nil(t, out.Session)
		})
	}
}

func TestAuthenticate_UnrecognizedFaultIsReturned(t *testing.T) {
	boom := errors.New("network down")
	it := NewInteractor(&stubAuth{err: boom}, logger.Nop())

	_, err := it.Execute(context.Background(), nil, loginForm())
	assert.Equal(t, boom, err)
}
