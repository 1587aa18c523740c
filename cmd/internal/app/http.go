package app

import (
	"net/http"

	"warasin/cmd/internal/auth/web"
	"warasin/cmd/internal/forms"
)

func registerHTTP(
	mux *http.ServeMux,
	cfg Config,
	metrics *Metrics,
	auth *web.Handler,
	formsHandler *forms.Handler,
) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	// The gateway has no backing stores; ready means wired.
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		if auth == nil {
			http.Error(w, "auth not configured", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	if cfg.MetricsEnabled && metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	auth.Register(mux)
	formsHandler.Register(mux)
}
