package token

import (
	"os"
	"strings"
	"time"
)

// Token formats accepted by NewDecoder.
const (
	FormatJWT    = "jwt"
	FormatPaseto = "paseto"
)

// Config selects and parameterizes the token decoder.
type Config struct {
	// Format is FormatJWT or FormatPaseto.
	Format string

	// PasetoV4PublicKeyHex verifies v4.public tokens.
	PasetoV4PublicKeyHex string

	// PasetoV4SecretKeyHex signs dev tokens. When the public key is empty it is derived from this.
	PasetoV4SecretKeyHex string

	// Issuer is checked on PASETO decode (when set) and stamped on dev tokens.
	Issuer string

	// TTL is the lifetime of dev tokens.
	TTL time.Duration
}

// DefaultConfig returns the jwt decoder with dev issuance defaults.
func DefaultConfig() Config {
	return Config{
		Format: FormatJWT,
		Issuer: "warasin",
		TTL:    time.Hour,
	}
}

// LoadConfigFromEnv loads decoder configuration from environment variables.
//
// Optional:
//   - WARASIN_TOKEN_FORMAT ("jwt" | "paseto")
//   - WARASIN_PASETO_V4_PUBLIC_KEY_HEX
//   - WARASIN_PASETO_V4_SECRET_KEY_HEX
//   - WARASIN_TOKEN_ISSUER
//   - WARASIN_TOKEN_TTL
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("WARASIN_TOKEN_FORMAT")); v != "" {
		v = strings.ToLower(v)
		if v != FormatJWT && v != FormatPaseto {
			return Config{}, ErrConfig
		}
		cfg.Format = v
	}

	cfg.PasetoV4PublicKeyHex = strings.TrimSpace(os.Getenv("WARASIN_PASETO_V4_PUBLIC_KEY_HEX"))
	cfg.PasetoV4SecretKeyHex = strings.TrimSpace(os.Getenv("WARASIN_PASETO_V4_SECRET_KEY_HEX"))

	if v := strings.TrimSpace(os.Getenv("WARASIN_TOKEN_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if v := strings.TrimSpace(os.Getenv("WARASIN_TOKEN_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}

	if cfg.Format == FormatPaseto && cfg.PasetoV4PublicKeyHex == "" && cfg.PasetoV4SecretKeyHex == "" {
		return Config{}, ErrConfig
	}

	return cfg, nil
}
