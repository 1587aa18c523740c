// Package token decodes Warasin credential tokens into claims.
//
// The gateway never trusts a token for authorization decisions; it only needs
// the payload to present the current user. Two formats are supported:
//
//   - jwt: compact JWS decoded without signature verification, the same
//     contract the browser client applies with jwt-decode.
//   - paseto: PASETO v4.public, verified against a configured Ed25519 public key.
//
// Decoding is pure and synchronous. Callers that must never fail use TryDecode,
// which folds every failure (including decoder panics) into a Result.
//
// Environment:
//   - WARASIN_TOKEN_FORMAT: "jwt" (default) or "paseto".
//   - WARASIN_PASETO_V4_PUBLIC_KEY_HEX: verification key for paseto.
//   - WARASIN_PASETO_V4_SECRET_KEY_HEX: dev-only signing key (token mint).
//   - WARASIN_TOKEN_ISSUER, WARASIN_TOKEN_TTL: dev issuance rules.
package token
