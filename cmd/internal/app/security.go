package app

import (
	"errors"
	"strings"

	"warasin/cmd/security/token"
)

// ValidateSecurityConfig enforces the gateway's security policy at startup.
// Fail-fast: a production process never silently runs with weaker settings.
func ValidateSecurityConfig(cfg Config) error {
	if !cfg.Production() {
		return nil
	}

	if !cfg.Auth.CookieSecure {
		return errors.New("security policy: WARASIN_ENV=production requires WARASIN_AUTH_COOKIE_SECURE=true")
	}

	// Signing keys belong to the backend; the gateway only verifies.
	if strings.TrimSpace(cfg.Token.PasetoV4SecretKeyHex) != "" {
		return errors.New("security policy: WARASIN_PASETO_V4_SECRET_KEY_HEX must not be set in production")
	}
	if cfg.Token.Format == token.FormatPaseto && strings.TrimSpace(cfg.Token.PasetoV4PublicKeyHex) == "" {
		return errors.New("security policy: paseto format requires WARASIN_PASETO_V4_PUBLIC_KEY_HEX")
	}

	return nil
}
