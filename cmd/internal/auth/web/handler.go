// Package web exposes the Warasin session over HTTP.
//
// The session token lives in an HttpOnly cookie. Middleware installs a
// per-request session.Accessor backed by a CookieProvider, so every handler
// reads the current user through session.Use.
package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"warasin/cmd/internal/auth/session"
	"warasin/cmd/internal/httpjson"
	"warasin/cmd/security/token"
	v1 "warasin/contracts/api/v1"

	"github.com/prometheus/client_golang/prometheus"
)

// Handler wires the session cookie to the session accessor and serves /auth routes.
type Handler struct {
	log *slog.Logger
	cfg Config

	decoder        token.Decoder
	decodeFailures prometheus.Counter
	throttle       *loginThrottle
}

// HandlerOption configures optional handler dependencies.
type HandlerOption func(*Handler)

// WithDecodeFailureCounter counts requests whose session token failed to decode.
func WithDecodeFailureCounter(c prometheus.Counter) HandlerOption {
	return func(h *Handler) {
		if h == nil || c == nil {
			return
		}
		h.decodeFailures = c
	}
}

// NewHandler constructs a Handler. The decoder is required.
func NewHandler(log *slog.Logger, cfg Config, dec token.Decoder, opts ...HandlerOption) (*Handler, error) {
	if dec == nil {
		return nil, session.ErrNoDecoder
	}
	if log == nil {
		log = slog.Default()
	}

	h := &Handler{log: log, cfg: cfg, decoder: dec, throttle: newLoginThrottle(cfg, time.Now)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h, nil
}

type providerKey struct{}

// Middleware installs the session accessor for each request.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := NewCookieProvider(h.cfg, w, r)
		a, err := session.NewAccessor(p, h.decoder, h.log)
		if err != nil {
			h.log.Error("auth.session.accessor.fail", "err", err)
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := session.NewContext(r.Context(), a)
		ctx = context.WithValue(ctx, providerKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Register wires auth routes onto mux. Routes expect Middleware to wrap the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/logout", h.handleLogout)
	mux.HandleFunc("GET /auth/session", h.handleSession)
}

// ---- handlers ----

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if blocked, retry := h.throttle.check(ip); blocked {
		h.log.Warn("auth.login.rate_limited", "ip", ip, "retry_after", retry)
		writeRateLimited(w, retry)
		return
	}

	raw, err := h.readLoginToken(w, r)
	if err != nil {
		var apiErr *v1.APIError
		if errors.As(err, &apiErr) {
			h.throttle.fail(ip)
			h.log.Info("auth.login.rejected", "reason", "backend_status_false")
			httpjson.WriteError(w, http.StatusUnauthorized, apiErr.Message)
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpjson.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if raw == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	ctx := r.Context()
	session.Use(ctx).Login(raw)

	view := session.Use(ctx)
	if !view.Authenticated() {
		h.countDecodeFailure()
		h.throttle.fail(ip)
		if p, ok := ctx.Value(providerKey{}).(*CookieProvider); ok {
			p.Logout()
		}
		h.log.Info("auth.login.rejected", "reason", "token_undecodable")
		httpjson.WriteError(w, http.StatusUnprocessableEntity, "token could not be decoded")
		return
	}

	h.throttle.reset(ip)
	h.log.Info("auth.login.success", "sub", view.User.Subject(), "role", view.User.Role())
	httpjson.WriteEnvelope(w, http.StatusOK, true, "logged in", toSessionResponse(view.User))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := session.Use(ctx)

	if p, ok := ctx.Value(providerKey{}).(*CookieProvider); ok {
		p.Logout()
	}
	if view.Authenticated() {
		h.log.Info("auth.logout", "sub", view.User.Subject())
	}
	httpjson.WriteEnvelope(w, http.StatusOK, true, "logged out", toSessionResponse(nil))
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	view := session.Use(r.Context())
	if view.HasToken && !view.Authenticated() {
		h.countDecodeFailure()
	}
	httpjson.WriteEnvelope(w, http.StatusOK, true, "ok", toSessionResponse(view.User))
}

// readLoginToken accepts {"token": "..."} or a backend TokenResponse envelope.
func (h *Handler) readLoginToken(w http.ResponseWriter, r *http.Request) (string, error) {
	body := httpjson.Body(w, r, h.cfg.MaxBodyBytes)
	if body == nil {
		return "", errors.New("empty body")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	if req, err := v1.DecodeRequest[loginRequest](bytes.NewReader(b)); err == nil {
		return strings.TrimSpace(req.Token), nil
	}

	env, err := v1.Decode[v1.TokenData](bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	if err := env.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(env.Data.Token), nil
}

func (h *Handler) countDecodeFailure() {
	if h.decodeFailures != nil {
		h.decodeFailures.Inc()
	}
}
