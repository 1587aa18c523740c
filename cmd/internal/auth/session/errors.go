package session

import "errors"

var (
	// ErrNoProvider is a wiring error: the accessor was used without an auth provider in scope.
	ErrNoProvider = errors.New("session: no auth provider in scope")

	// ErrNoDecoder is a wiring error: the accessor was built without a token decoder.
	ErrNoDecoder = errors.New("session: no token decoder configured")
)
