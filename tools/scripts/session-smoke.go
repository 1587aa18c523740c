// Package main provides a CI-friendly smoke test for the Warasin session gateway.
//
// It validates:
//   - liveness
//   - login with a backend TokenResponse envelope sets the session cookie
//   - the session view resolves the token's user
//   - logout clears the session
//   - form validation rejects an invalid admin login
//
// Plain-http targets need WARASIN_AUTH_COOKIE_SECURE=false on the gateway, or
// the cookie jar will not send the session cookie back.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"warasin/cmd/security/token"
	v1 "warasin/contracts/api/v1"
)

const maxReadBytes = 1 << 20 // 1MiB

type sessionData struct {
	Authenticated bool           `json:"authenticated"`
	User          map[string]any `json:"user"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
}

type smokeClient struct {
	base    *url.URL
	http    *http.Client
	verbose bool
}

func main() {
	var (
		baseURL = flag.String("url", "http://127.0.0.1:8080", "Gateway base URL")
		raw     = flag.String("token", "", "Token to log in with (minted as HS256 when empty)")
		secret  = flag.String("secret", "warasin-smoke-secret", "HS256 secret used when minting")
		sub     = flag.String("sub", "smoke-admin", "Subject claim used when minting")
		timeout = flag.Duration("timeout", 7*time.Second, "Per-request timeout")
		verbose = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	base, err := validateBaseURL(*baseURL)
	if err != nil {
		fatalf("invalid -url: %v", err)
	}

	tok := strings.TrimSpace(*raw)
	if tok == "" {
		tok, err = token.MintJWT(token.Claims{
			"sub":  *sub,
			"role": "admin",
			"exp":  time.Now().Add(10 * time.Minute).Unix(),
		}, []byte(*secret))
		if err != nil {
			fatalf("mint token: %v", err)
		}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		fatalf("cookie jar: %v", err)
	}
	c := &smokeClient{
		base:    base,
		http:    &http.Client{Jar: jar, Timeout: *timeout},
		verbose: *verbose,
	}

	c.mustHealthy()

	login := v1.New(true, "token issued", v1.TokenData{Token: tok}, time.Now().UTC())
	env := c.mustSession(http.MethodPost, "/auth/login", login, http.StatusOK)
	if !env.Data.Authenticated {
		fatalf("login: session not authenticated")
	}
	if c.cookieCount() == 0 {
		fatalf("login: no session cookie stored (is WARASIN_AUTH_COOKIE_SECURE=false for http?)")
	}

	env = c.mustSession(http.MethodGet, "/auth/session", nil, http.StatusOK)
	if !env.Data.Authenticated {
		fatalf("session: expected authenticated view")
	}
	if *raw == "" && env.Data.User["sub"] != *sub {
		fatalf("session: sub mismatch: got=%v want=%q", env.Data.User["sub"], *sub)
	}

	c.mustSession(http.MethodPost, "/auth/logout", nil, http.StatusOK)

	env = c.mustSession(http.MethodGet, "/auth/session", nil, http.StatusOK)
	if env.Data.Authenticated || env.Data.User != nil {
		fatalf("after logout: expected anonymous view, got %+v", env.Data)
	}

	c.mustFormRejected()

	fmt.Println("OK: session smoke passed")
}

func validateBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host")
	}
	return u, nil
}

func (c *smokeClient) url(path string) string {
	return c.base.JoinPath(path).String()
}

func (c *smokeClient) cookieCount() int {
	return len(c.http.Jar.Cookies(c.base))
}

func (c *smokeClient) do(method, path string, body any) (int, []byte) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			fatalf("%s %s: marshal body: %v", method, path, err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.url(path), r)
	if err != nil {
		fatalf("%s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxReadBytes))
	if err != nil {
		fatalf("%s %s: read body: %v", method, path, err)
	}
	if c.verbose {
		fmt.Printf("%s %s -> %d %s\n", method, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return resp.StatusCode, b
}

func (c *smokeClient) mustHealthy() {
	if status, _ := c.do(http.MethodGet, "/healthz", nil); status != http.StatusOK {
		fatalf("healthz: status=%d", status)
	}
}

func (c *smokeClient) mustSession(method, path string, body any, want int) v1.Envelope[sessionData] {
	status, b := c.do(method, path, body)
	if status != want {
		fatalf("%s %s: status=%d want=%d body=%s", method, path, status, want, b)
	}
	env, err := v1.Decode[sessionData](bytes.NewReader(b))
	if err != nil {
		fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	if err := env.Err(); err != nil {
		fatalf("%s %s: %v", method, path, err)
	}
	return env
}

func (c *smokeClient) mustFormRejected() {
	status, b := c.do(http.MethodPost, "/forms/admin-login/validate", v1.AdminLoginRequest{Email: "x", Password: "short"})
	if status != http.StatusUnprocessableEntity {
		fatalf("forms: status=%d want=%d body=%s", status, http.StatusUnprocessableEntity, b)
	}
	env, err := v1.Decode[json.RawMessage](bytes.NewReader(b))
	if err != nil {
		fatalf("forms: decode envelope: %v", err)
	}
	if env.Status {
		fatalf("forms: expected status=false")
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FAIL: "+format+"\n", args...)
	os.Exit(1)
}
