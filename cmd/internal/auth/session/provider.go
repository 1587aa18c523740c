package session

import "sync"

// Provider is the holder of the current credential token and its login mutator.
// The accessor only reads through Token; all mutation goes through Login.
type Provider interface {
	// Token returns the current token; ok is false when there is no session.
	Token() (token string, ok bool)

	// Login replaces the current token.
	Login(token string)
}

// MemoryProvider is a goroutine-safe in-process Provider.
type MemoryProvider struct {
	mu    sync.RWMutex
	token string
	ok    bool
}

// NewMemoryProvider returns a provider holding raw, or no session when raw is empty.
func NewMemoryProvider(raw string) *MemoryProvider {
	return &MemoryProvider{token: raw, ok: raw != ""}
}

// Token implements Provider.
func (p *MemoryProvider) Token() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, p.ok
}

// Login implements Provider.
func (p *MemoryProvider) Login(token string) {
	p.mu.Lock()
	p.token, p.ok = token, true
	p.mu.Unlock()
}

// Logout clears the session.
func (p *MemoryProvider) Logout() {
	p.mu.Lock()
	p.token, p.ok = "", false
	p.mu.Unlock()
}
