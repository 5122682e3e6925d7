package domain

import (
	"errors"
	"fmt"
)

// Kinds of AuthError the sign-in flow distinguishes.
const (
	KindCredentialsSignin  = "CredentialsSignin"
	KindCallbackRouteError = "CallbackRouteError"
	KindConfiguration      = "Configuration"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session token")
)

// AuthError is a recognized authentication fault. Kind is one of the Kind*
// constants; any other error reaching a caller is an unrecognized fault.
type AuthError struct {
	Kind string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + e.Kind
	}
	return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AsAuthError reports whether err carries an AuthError.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
