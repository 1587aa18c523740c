package forms

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelopeBody struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, path, body string) (*httptest.ResponseRecorder, envelopeBody) {
	t.Helper()

	mux := http.NewServeMux()
	NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), 1<<10).Register(mux)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	var env envelopeBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr, env
}

func TestHandleValidate_Valid(t *testing.T) {
	t.Parallel()

	rr, env := serve(t, "/forms/admin-login/validate", `{"email":"admin@warasin.id","password":"rahasia123"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Status)
	assert.Equal(t, "valid", env.Message)
	assert.Equal(t, "null", string(env.Data))
}

func TestHandleValidate_Invalid(t *testing.T) {
	t.Parallel()

	rr, env := serve(t, "/forms/motivation/validate", `{"author":"","content":"","category_id":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.False(t, env.Status)

	var fields []FieldError
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	require.Len(t, fields, 3)
	assert.Equal(t, "author", fields[0].Field)
}

func TestHandleValidate_BadBodyAndUnknownSchema(t *testing.T) {
	t.Parallel()

	rr, env := serve(t, "/forms/motivation/validate", `{"author":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.Status)

	rr, env = serve(t, "/forms/motivation/validate", `{"author":"`+strings.Repeat("a", 2048)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "request body too large", env.Message)

	rr, env = serve(t, "/forms/register/validate", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "unknown form", env.Message)
}
