// Package httpjson holds the JSON response helpers shared by the gateway's HTTP handlers.
// Every body is a v1.Envelope so browser code handles gateway and backend responses alike.
package httpjson

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	v1 "warasin/contracts/api/v1"
)

// Write encodes v as JSON with no-store caching.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteEnvelope writes data wrapped in a v1 envelope.
func WriteEnvelope[T any](w http.ResponseWriter, status int, ok bool, message string, data T) {
	Write(w, status, v1.New(ok, message, data, time.Now()))
}

// WriteError writes a failed envelope without data.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteEnvelope[any](w, status, false, message, nil)
}

// Body returns r.Body capped at maxBytes.
func Body(w http.ResponseWriter, r *http.Request, maxBytes int64) io.Reader {
	if r.Body == nil {
		return nil
	}
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	return http.MaxBytesReader(w, r.Body, maxBytes)
}
