// Package common defines shared constants and sentinel errors used across
// the client core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors caused by the user; always surfaced verbatim to the UI
	// and never a reason to switch backends.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("no account found with this email")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrValidation         = errors.New("validation error")

	// ErrNoSession marks the legitimate logged-out state: the backend is
	// reachable but holds no active session for this client.
	ErrNoSession = errors.New("no active session")

	// ErrUnavailable marks infrastructure failures (network, configuration,
	// 5xx, missing permissions). It is the only error class that triggers
	// fallback to the local backend.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnsupportedInMode marks operations with no local equivalent,
	// such as password recovery over email.
	ErrUnsupportedInMode = errors.New("operation is not supported in offline mode")

	// Favorites errors caused by the user; surfaced verbatim.
	ErrFavoriteExists   = errors.New("movie is already in favorites")
	ErrFavoriteNotFound = errors.New("movie not found in favorites")
)
