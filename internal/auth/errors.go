package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDeactivated        = errors.New("account is deactivated")
	ErrLocked             = errors.New("account is locked")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	// ErrUnavailable marks transient repository failures. The core never
	// retries; callers may resubmit with backoff.
	ErrUnavailable = errors.New("store unavailable")
)
