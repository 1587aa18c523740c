// Package app wires the Warasin gateway runtime: config, logging, metrics and HTTP routes.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"warasin/cmd/internal/auth/web"
	"warasin/cmd/internal/forms"
	"warasin/cmd/security/token"
)

// App is the gateway runtime: it owns the HTTP server and its handlers.
type App struct {
	cfg Config
	log Logger

	metrics *Metrics
	handler http.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}
	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}

	dec, err := token.NewDecoder(cfg.Token)
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics()

	auth, err := web.NewHandler(log, cfg.Auth, dec, web.WithDecodeFailureCounter(metrics.TokenDecodeFailures))
	if err != nil {
		return nil, err
	}
	formsHandler := forms.NewHandler(log, cfg.Auth.MaxBodyBytes)

	mux := http.NewServeMux()
	registerHTTP(mux, cfg, metrics, auth, formsHandler)

	// Outermost first: request id, hardening headers, logging, then the session accessor.
	var h http.Handler = auth.Middleware(mux)
	h = WithRequestLogging(h, log, metrics)
	h = WithSecurityHeaders(h)
	h = WithRequestID(h, log)

	return &App{cfg: cfg, log: log, metrics: metrics, handler: h}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Run starts the HTTP server and blocks until context cancellation or fatal server error.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.handler,
		ReadHeaderTimeout: nonZero(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZero(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZero(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZero(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZero(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start",
		"addr", a.cfg.HTTPAddr,
		"url", runtimeBaseURL(a.cfg.HTTPAddr),
		"env", a.cfg.Env,
		"token_format", a.cfg.Token.Format,
		"metrics", a.cfg.MetricsEnabled,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), nonZero(a.cfg.ShutdownTimeout, 10*time.Second))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZero[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// runtimeBaseURL turns a listen address into a URL a local client can dial.
func runtimeBaseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
