package token

import (
	"fmt"
	"strings"
	"time"

	paseto "aidanwoods.dev/go-paseto"
)

const pasetoV4PublicPrefix = "v4.public."

type pasetoV4Decoder struct {
	issuer string
	public paseto.V4AsymmetricPublicKey
}

// NewPasetoV4Decoder builds a Decoder for PASETO v4.public tokens.
//
// Expiry is not enforced here: the decoder reports what the token says and
// leaves freshness to the backend that issued it. When issuer is non-empty the
// "iss" claim must match.
func NewPasetoV4Decoder(publicKeyHex, issuer string) (Decoder, error) {
	pub, err := paseto.NewV4AsymmetricPublicKeyFromHex(strings.TrimSpace(publicKeyHex))
	if err != nil {
		return nil, ErrConfig
	}
	return &pasetoV4Decoder{issuer: strings.TrimSpace(issuer), public: pub}, nil
}

func (d *pasetoV4Decoder) Decode(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmpty
	}
	if !strings.HasPrefix(raw, pasetoV4PublicPrefix) {
		return nil, fmt.Errorf("%w: not a v4.public token", ErrMalformed)
	}

	// Fresh parser per call so rules never accumulate.
	p := paseto.NewParserWithoutExpiryCheck()
	if d.issuer != "" {
		p.AddRule(paseto.IssuedBy(d.issuer))
	}

	parsed, err := p.ParseV4Public(d.public, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return Claims(parsed.Claims()), nil
}

// PasetoV4Issuer signs dev tokens with the same rules the backend applies:
// issuer, issued-at, not-before and expiration are always set.
type PasetoV4Issuer struct {
	issuer string
	ttl    time.Duration
	secret paseto.V4AsymmetricSecretKey
}

// NewPasetoV4Issuer builds an issuer from cfg. The secret key is required.
func NewPasetoV4Issuer(cfg Config) (*PasetoV4Issuer, error) {
	secret, err := paseto.NewV4AsymmetricSecretKeyFromHex(strings.TrimSpace(cfg.PasetoV4SecretKeyHex))
	if err != nil {
		return nil, ErrConfig
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &PasetoV4Issuer{issuer: cfg.Issuer, ttl: ttl, secret: secret}, nil
}

// PublicKeyHex returns the verification key matching the issuer's secret.
func (i *PasetoV4Issuer) PublicKeyHex() string {
	return i.secret.Public().ExportHex()
}

// Issue signs claims and returns the token with its expiry.
func (i *PasetoV4Issuer) Issue(claims Claims, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.ttl)

	tok := paseto.NewToken()
	for k, v := range claims {
		if err := tok.Set(k, v); err != nil {
			return "", time.Time{}, fmt.Errorf("set claim %q: %w", k, err)
		}
	}
	if i.issuer != "" {
		tok.SetIssuer(i.issuer)
	}
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now)
	tok.SetExpiration(exp)

	return tok.V4Sign(i.secret, nil), exp, nil
}

func publicHexFromSecret(secretHex string) (string, error) {
	secret, err := paseto.NewV4AsymmetricSecretKeyFromHex(strings.TrimSpace(secretHex))
	if err != nil {
		return "", ErrConfig
	}
	return secret.Public().ExportHex(), nil
}
