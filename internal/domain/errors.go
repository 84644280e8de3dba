package domain

import "errors"

// Auth error kinds surfaced to callers. Handlers map these onto HTTP status
// codes; services wrap them with %w so errors.Is still matches.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("no active session for subject")
	ErrTokenMismatch      = errors.New("refresh token does not match stored session")
	ErrUserNotFound       = errors.New("user not found")
)
