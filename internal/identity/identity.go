package identity

import "errors"

// Identity is the stable remote identity returned by the provider. It only
// carries authentication attributes; profile data lives in the profile store.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

var (
	// ErrUnavailable covers transport failures and provider-side errors.
	// Callers treat it as a signal to fall back, never to surface.
	ErrUnavailable = errors.New("identity provider unavailable")

	// ErrBadCredentials is a definitive rejection of the email/password pair.
	ErrBadCredentials = errors.New("identity provider rejected credentials")
)
