package token

import (
	"encoding/json"
	"math"
	"time"
)

// Claims is the decoded token payload.
// Values keep their JSON shape: strings, float64 numbers, bools, nested maps and slices.
type Claims map[string]any

// String returns the claim at key when it is a string.
func (c Claims) String(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c[key].(string)
	return v, ok
}

// Subject returns the "sub" claim, or "" when absent.
func (c Claims) Subject() string {
	s, _ := c.String("sub")
	return s
}

// Role returns the "role" claim, or "" when absent.
func (c Claims) Role() string {
	s, _ := c.String("role")
	return s
}

// ExpiresAt returns the "exp" claim as a time.
// JWTs carry NumericDate seconds; PASETO carries RFC 3339 strings.
func (c Claims) ExpiresAt() (time.Time, bool) {
	if c == nil {
		return time.Time{}, false
	}

	switch v := c["exp"].(type) {
	case float64:
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0).UTC(), true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	default:
		return time.Time{}, false
	}
}
