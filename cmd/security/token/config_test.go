package token

import (
	"testing"
	"time"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("WARASIN_TOKEN_FORMAT", "")
	t.Setenv("WARASIN_TOKEN_TTL", "")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != FormatJWT {
		t.Fatalf("format mismatch: %q", cfg.Format)
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("ttl mismatch: %v", cfg.TTL)
	}
}

func TestLoadConfigFromEnv_UnknownFormat(t *testing.T) {
	t.Setenv("WARASIN_TOKEN_FORMAT", "saml")
	_, err := LoadConfigFromEnv()
	if err != ErrConfig {
		t.Fatalf("expected ErrConfig for unknown format, got %v", err)
	}
}

func TestLoadConfigFromEnv_PasetoWithoutKey(t *testing.T) {
	t.Setenv("WARASIN_TOKEN_FORMAT", "paseto")
	t.Setenv("WARASIN_PASETO_V4_PUBLIC_KEY_HEX", "")
	t.Setenv("WARASIN_PASETO_V4_SECRET_KEY_HEX", "")
	_, err := LoadConfigFromEnv()
	if err != ErrConfig {
		t.Fatalf("expected ErrConfig for paseto without key, got %v", err)
	}
}

func TestLoadConfigFromEnv_InvalidTTL(t *testing.T) {
	t.Setenv("WARASIN_TOKEN_TTL", "-5m")
	_, err := LoadConfigFromEnv()
	if err != ErrConfig {
		t.Fatalf("expected ErrConfig for negative ttl, got %v", err)
	}
}

func TestLoadConfigFromEnv_Valid(t *testing.T) {
	t.Setenv("WARASIN_TOKEN_FORMAT", "PASETO")
	t.Setenv("WARASIN_PASETO_V4_PUBLIC_KEY_HEX", "abc")
	t.Setenv("WARASIN_TOKEN_ISSUER", "warasin-test")
	t.Setenv("WARASIN_TOKEN_TTL", "10m")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != FormatPaseto {
		t.Fatalf("format mismatch: %q", cfg.Format)
	}
	if cfg.Issuer != "warasin-test" {
		t.Fatalf("issuer mismatch: %q", cfg.Issuer)
	}
	if cfg.TTL != 10*time.Minute {
		t.Fatalf("ttl mismatch: %v", cfg.TTL)
	}
}
