package token

import "errors"

// Public, stable errors for callers.
var (
	// ErrEmpty is returned when the raw token is blank.
	ErrEmpty = errors.New("token empty")

	// ErrMalformed is returned when the token structure or encoding cannot be parsed.
	ErrMalformed = errors.New("token malformed")

	// ErrInvalidSignature is returned when a verifying decoder rejects the token.
	ErrInvalidSignature = errors.New("token signature invalid")

	// ErrConfig is returned for invalid decoder configuration.
	ErrConfig = errors.New("invalid token config")
)
