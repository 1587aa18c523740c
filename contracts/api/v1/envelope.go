// Package v1 defines the Warasin backend API v1 contract.
//
// These are the JSON shapes exchanged with the Warasin backend. The package is
// intentionally dependency-light so that the gateway, the CLI and tests share
// one authoritative definition of the wire format.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Envelope is the canonical response wrapper used by every endpoint except registration.
type Envelope[T any] struct {
	Status    bool      `json:"status"`
	Message   string    `json:"message"`
	Data      T         `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds an envelope stamped with now (UTC).
func New[T any](status bool, message string, data T, now time.Time) Envelope[T] {
	return Envelope[T]{
		Status:    status,
		Message:   message,
		Data:      data,
		Timestamp: now.UTC(),
	}
}

// Validate performs structural validation for an Envelope.
func (e Envelope[T]) Validate() error {
	if strings.TrimSpace(e.Message) == "" {
		return errors.New("missing field: message")
	}
	if e.Timestamp.IsZero() {
		return errors.New("missing field: timestamp")
	}
	return nil
}

// Err returns an *APIError when the backend reported failure.
func (e Envelope[T]) Err() error {
	if e.Status {
		return nil
	}
	return &APIError{Message: e.Message, Timestamp: e.Timestamp}
}

// APIError is a failed envelope surfaced as a Go error.
type APIError struct {
	Message   string
	Timestamp time.Time
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "warasin api: request failed"
	}
	return "warasin api: " + e.Message
}

// ErrTrailingData is returned by Decode when more than one JSON value is present.
var ErrTrailingData = errors.New("extra data after JSON object")

// Decode strictly decodes a single JSON envelope from r.
// Unknown fields and trailing data are rejected.
func Decode[T any](r io.Reader) (Envelope[T], error) {
	var env Envelope[T]
	if err := decodeStrict(r, &env); err != nil {
		return Envelope[T]{}, err
	}
	if err := env.Validate(); err != nil {
		return Envelope[T]{}, fmt.Errorf("invalid envelope: %w", err)
	}
	return env, nil
}

// DecodeRequest strictly decodes a single JSON request body from r.
func DecodeRequest[T any](r io.Reader) (T, error) {
	var req T
	if err := decodeStrict(r, &req); err != nil {
		var zero T
		return zero, err
	}
	return req, nil
}

func decodeStrict(r io.Reader, dst any) error {
	if r == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrTrailingData
	}
	return nil
}
