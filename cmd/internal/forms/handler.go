package forms

import (
	"errors"
	"log/slog"
	"net/http"

	"warasin/cmd/internal/httpjson"
)

// Handler serves POST /forms/{schema}/validate.
type Handler struct {
	log          *slog.Logger
	maxBodyBytes int64
}

// NewHandler constructs a forms Handler.
func NewHandler(log *slog.Logger, maxBodyBytes int64) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, maxBodyBytes: maxBodyBytes}
}

// Register wires form routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /forms/{schema}/validate", h.handleValidate)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("schema")
	s, ok := Lookup(name)
	if !ok {
		httpjson.WriteError(w, http.StatusNotFound, "unknown form")
		return
	}

	// The decoded form is not echoed back: it may carry a password.
	_, err := s.Check(httpjson.Body(w, r, h.maxBodyBytes))
	if err == nil {
		httpjson.WriteEnvelope[any](w, http.StatusOK, true, "valid", nil)
		return
	}

	var (
		fieldErrs Errors
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &fieldErrs):
		h.log.Debug("forms.validate.rejected", "schema", name, "fields", len(fieldErrs))
		httpjson.WriteEnvelope(w, http.StatusUnprocessableEntity, false, "validation failed", fieldErrs)
	case errors.As(err, &tooLarge):
		httpjson.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, ErrInvalidBody):
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
	default:
		h.log.Error("forms.validate.fail", "schema", name, "err", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
