package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type jwtDecoder struct {
	parser *jwt.Parser
}

// NewJWTDecoder returns a Decoder for compact JWTs.
// The signature is NOT verified; the payload is trusted only for presentation.
func NewJWTDecoder() Decoder {
	return &jwtDecoder{parser: jwt.NewParser()}
}

func (d *jwtDecoder) Decode(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmpty
	}

	// Only the payload is read. An alg the parser does not know leaves the payload readable.
	_, parts, err := d.parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: token contains an invalid number of segments", ErrMalformed)
	}

	payload, err := d.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformed)
	}
	return Claims(obj), nil
}

// MintJWT signs claims as an HS256 JWT. It exists for local development and tests;
// production tokens are issued by the Warasin backend.
func MintJWT(claims Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrConfig
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims))
	return tok.SignedString(secret)
}
