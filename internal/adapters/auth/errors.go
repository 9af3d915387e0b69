package auth

import "errors"

// ErrExchangeFailed is returned when the authorization code could not be
// exchanged for a session.
var ErrExchangeFailed = errors.New("authorization code exchange failed")
