package web

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// CookieProvider is a session.Provider backed by the request's session cookie.
// Login and Logout write Set-Cookie headers and update the in-request token so
// later reads in the same request observe the change.
type CookieProvider struct {
	cfg Config
	w   http.ResponseWriter
	now func() time.Time

	mu    sync.Mutex
	token string
	ok    bool
}

// NewCookieProvider reads the session cookie from r. An empty cookie counts as no session.
func NewCookieProvider(cfg Config, w http.ResponseWriter, r *http.Request) *CookieProvider {
	p := &CookieProvider{cfg: cfg, w: w, now: time.Now}
	if r == nil {
		return p
	}
	c, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return p
	}
	if v := strings.TrimSpace(c.Value); v != "" {
		p.token, p.ok = v, true
	}
	return p
}

// Token implements session.Provider.
func (p *CookieProvider) Token() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token, p.ok
}

// Login implements session.Provider.
func (p *CookieProvider) Login(token string) {
	p.mu.Lock()
	p.token, p.ok = token, true
	p.mu.Unlock()

	if p.w == nil {
		return
	}
	http.SetCookie(p.w, &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    token,
		Path:     p.cfg.CookiePath,
		Domain:   p.cfg.CookieDomain,
		Expires:  p.now().Add(p.cfg.CookieTTL).UTC(),
		MaxAge:   int(p.cfg.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   p.cfg.CookieSecure,
		SameSite: p.cfg.CookieSameSite,
	})
}

// Logout clears the session and expires the cookie.
func (p *CookieProvider) Logout() {
	p.mu.Lock()
	p.token, p.ok = "", false
	p.mu.Unlock()

	if p.w == nil {
		return
	}
	http.SetCookie(p.w, &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    "",
		Path:     p.cfg.CookiePath,
		Domain:   p.cfg.CookieDomain,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.cfg.CookieSecure,
		SameSite: p.cfg.CookieSameSite,
	})
}
