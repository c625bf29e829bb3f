package domain

import "errors"

// Sentinel errors for the whole core. Handlers never branch on message text;
// the central HTTP error handler maps these to status codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many sign-in attempts")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrMissingReference   = errors.New("referenced record does not exist")
	ErrMalformedFilter    = errors.New("malformed filter expression")
	ErrLoginTaken         = errors.New("login already in use")
	ErrInvalidTransition  = errors.New("invalid state transition")
)
