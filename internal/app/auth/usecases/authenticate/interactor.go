package authenticate

import (
	"context"
	"net/url"
	"strings"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/credentials"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."

	DefaultRedirect = "/dashboard"
	FieldRedirectTo = "redirectTo"
)

// Outcome is either a message for the login form or a redirect with the
// issued session.
type Outcome struct {
	Message  *string
	Redirect string
	Session  *domain.Session
}

func (o Outcome) IsRedirect() bool { return o.Redirect != "" }

type Interactor struct {
	Auth contracts.Authenticator
	Log  *logger.Logger
}

func NewInteractor(auth contracts.Authenticator, log *logger.Logger) *Interactor {
	return &Interactor{Auth: auth, Log: log.With("usecase", "authenticate")}
}

// Execute signs in with the credentials provider. Recognized auth faults
// become a form message; anything else is returned to the caller.
func (it *Interactor) Execute(ctx context.Context, _ *string, form url.Values) (Outcome, error) {
	session, err := it.Auth.SignIn(ctx, credentials.ProviderName, form)
	if err == nil {
		it.Log.Info("signed in", "user_id", session.UserID)
		return Outcome{Redirect: redirectTarget(form.Get(FieldRedirectTo)), Session: session}, nil
	}

	ae, ok := domain.AsAuthError(err)
	if !ok {
		return Outcome{}, err
	}

	msg := MsgSomethingWentWrong
	if ae.Kind == domain.KindCredentialsSignin {
		msg = MsgInvalidCredentials
		it.Log.Debug("sign in rejected", "kind", ae.Kind)
	} else {
		it.Log.Warn("sign in failed", "kind", ae.Kind, "error", ae.Err)
	}
	return Outcome{Message: &msg}, nil
}

// redirectTarget keeps redirects on this site.
func redirectTarget(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return DefaultRedirect
	}
	return raw
}
