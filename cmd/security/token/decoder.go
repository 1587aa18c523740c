package token

import (
	"fmt"
	"strings"
)

// Decoder parses a raw credential token into claims.
type Decoder interface {
	Decode(raw string) (Claims, error)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc func(raw string) (Claims, error)

// Decode calls f(raw).
func (f DecoderFunc) Decode(raw string) (Claims, error) { return f(raw) }

// Result is the outcome of a decode: claims on success, the failure otherwise.
// Exactly one of Claims and Err is set.
type Result struct {
	Claims Claims
	Err    error
}

// OK reports whether the decode succeeded.
func (r Result) OK() bool { return r.Err == nil && r.Claims != nil }

// TryDecode runs d on raw and never panics.
func TryDecode(d Decoder, raw string) (res Result) {
	if d == nil {
		return Result{Err: ErrConfig}
	}

	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: fmt.Errorf("%w: decoder panic: %v", ErrMalformed, p)}
		}
	}()

	claims, err := d.Decode(raw)
	if err != nil {
		return Result{Err: err}
	}
	if claims == nil {
		return Result{Err: fmt.Errorf("%w: empty claims", ErrMalformed)}
	}
	return Result{Claims: claims}
}

// NewDecoder builds the Decoder selected by cfg.Format.
func NewDecoder(cfg Config) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatJWT:
		return NewJWTDecoder(), nil
	case FormatPaseto:
		pub := strings.TrimSpace(cfg.PasetoV4PublicKeyHex)
		if pub == "" && strings.TrimSpace(cfg.PasetoV4SecretKeyHex) != "" {
			derived, err := publicHexFromSecret(cfg.PasetoV4SecretKeyHex)
			if err != nil {
				return nil, err
			}
			pub = derived
		}
		if pub == "" {
			return nil, ErrConfig
		}
		return NewPasetoV4Decoder(pub, cfg.Issuer)
	default:
		return nil, ErrConfig
	}
}
