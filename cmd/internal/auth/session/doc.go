// Package session derives the current Warasin session from a credential token.
//
// An Accessor reads the token and login mutator from an injected Provider and
// decodes the token into claims through a token.Decoder. The decode result is
// memoized by token value, so repeated lookups with an unchanged token never
// decode twice. A token that fails to decode yields a view without a user and a
// single diagnostic log entry; the failure is never returned to the caller.
//
// Transport integration (cookies, HTTP) lives in package web.
package session
