package session

import (
	"log/slog"
	"sync"

	"warasin/cmd/security/token"
)

// View is what consumers see of the current session.
type View struct {
	// Token is the raw credential; empty when HasToken is false.
	Token    string
	HasToken bool

	// Login delegates to the provider's mutator.
	Login func(token string)

	// User holds the decoded claims, or nil when there is no token or it failed to decode.
	User token.Claims
}

// Authenticated reports whether the view carries a decoded user.
func (v View) Authenticated() bool { return v.User != nil }

// Accessor exposes the session view over a Provider and a Decoder.
type Accessor struct {
	provider Provider
	decoder  token.Decoder
	log      *slog.Logger

	mu   sync.Mutex
	memo memo
}

// memo is a single slot keyed by token value.
type memo struct {
	set   bool
	token string
	res   token.Result
}

// NewAccessor builds an Accessor. Provider and decoder are required.
func NewAccessor(p Provider, d token.Decoder, log *slog.Logger) (*Accessor, error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	if d == nil {
		return nil, ErrNoDecoder
	}
	if log == nil {
		log = slog.Default()
	}
	return &Accessor{provider: p, decoder: d, log: log}, nil
}

// Use returns the current session view.
//
// Decoding runs only when the token value differs from the last decoded one.
// It is safe for concurrent use.
func (a *Accessor) Use() View {
	raw, ok := a.provider.Token()

	v := View{HasToken: ok, Login: a.provider.Login}
	if !ok {
		a.mu.Lock()
		a.memo = memo{}
		a.mu.Unlock()
		return v
	}

	v.Token = raw
	v.User = a.claimsFor(raw)
	return v
}

func (a *Accessor) claimsFor(raw string) token.Claims {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.memo.set && a.memo.token == raw {
		return a.memo.res.Claims
	}

	res := token.TryDecode(a.decoder, raw)
	if !res.OK() {
		a.log.Warn("auth.session.token_decode_failed",
			"event", "token_decode_failed",
			"err", res.Err,
		)
	}

	a.memo = memo{set: true, token: raw, res: res}
	return res.Claims
}
