package session

import (
	"bytes"
	"encoding/base64"
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warasin/cmd/security/token"
)

var testSecret = []byte("warasin-test-secret-at-least-32-bytes")

// countingDecoder wraps the JWT decoder and counts invocations.
type countingDecoder struct {
	inner token.Decoder
	calls atomic.Int64
}

func (d *countingDecoder) Decode(raw string) (token.Claims, error) {
	d.calls.Add(1)
	return d.inner.Decode(raw)
}

func newCounting() *countingDecoder {
	return &countingDecoder{inner: token.NewJWTDecoder()}
}

func mint(t *testing.T, claims token.Claims) string {
	t.Helper()
	raw, err := token.MintJWT(claims, testSecret)
	require.NoError(t, err)
	return raw
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func logLines(buf *bytes.Buffer) []string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestNewAccessor_RequiresProviderAndDecoder(t *testing.T) {
	t.Parallel()

	_, err := NewAccessor(nil, token.NewJWTDecoder(), nil)
	require.ErrorIs(t, err, ErrNoProvider)

	_, err = NewAccessor(NewMemoryProvider(""), nil, nil)
	require.ErrorIs(t, err, ErrNoDecoder)
}

func TestAccessor_ValidToken(t *testing.T) {
	t.Parallel()

	raw := mint(t, token.Claims{"sub": "user-1", "role": "admin"})
	a, err := NewAccessor(NewMemoryProvider(raw), token.NewJWTDecoder(), nil)
	require.NoError(t, err)

	v := a.Use()
	assert.True(t, v.HasToken)
	assert.Equal(t, raw, v.Token)
	assert.True(t, v.Authenticated())
	assert.Equal(t, token.Claims{"sub": "user-1", "role": "admin"}, v.User)
}

func TestAccessor_MalformedTokenLogsOnce(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger()
	a, err := NewAccessor(NewMemoryProvider("not-a-token"), token.NewJWTDecoder(), log)
	require.NoError(t, err)

	var v View
	require.NotPanics(t, func() { v = a.Use() })
	assert.True(t, v.HasToken)
	assert.Nil(t, v.User)
	assert.False(t, v.Authenticated())

	// Memoized failure: no second log entry.
	_ = a.Use()

	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"auth.session.token_decode_failed"`)
	assert.Contains(t, lines[0], `"event":"token_decode_failed"`)
	assert.NotContains(t, lines[0], "not-a-token")
}

func TestAccessor_UndecodableTokens(t *testing.T) {
	t.Parallel()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	nullPayload := header + "." + base64.RawURLEncoding.EncodeToString([]byte("null")) + ".sig"
	arrayPayload := header + "." + base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`)) + ".sig"

	cases := []string{"", "   ", "a.b", "x.y.z", "not-a-token", nullPayload, arrayPayload}
	for _, raw := range cases {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			p := &MemoryProvider{token: raw, ok: true}
			log, _ := newTestLogger()
			a, err := NewAccessor(p, token.NewJWTDecoder(), log)
			require.NoError(t, err)

			v := a.Use()
			assert.Nil(t, v.User)
			assert.True(t, v.HasToken)
		})
	}
}

func TestAccessor_NoTokenSkipsDecoder(t *testing.T) {
	t.Parallel()

	dec := newCounting()
	a, err := NewAccessor(NewMemoryProvider(""), dec, nil)
	require.NoError(t, err)

	v := a.Use()
	assert.False(t, v.HasToken)
	assert.Empty(t, v.Token)
	assert.Nil(t, v.User)
	assert.Zero(t, dec.calls.Load())
}

func TestAccessor_MemoizesByTokenValue(t *testing.T) {
	t.Parallel()

	raw := mint(t, token.Claims{"sub": "user-1"})
	dec := newCounting()
	p := NewMemoryProvider(raw)
	a, err := NewAccessor(p, dec, nil)
	require.NoError(t, err)

	first := a.Use()
	second := a.Use()
	assert.Equal(t, int64(1), dec.calls.Load())
	assert.Equal(t, first.User, second.User)

	// Same value, fresh string: still a memo hit.
	p.Login(string([]byte(raw)))
	_ = a.Use()
	assert.Equal(t, int64(1), dec.calls.Load())
}

func TestAccessor_TokenChangeUpdatesUser(t *testing.T) {
	t.Parallel()

	t1 := mint(t, token.Claims{"sub": "user-1", "role": "admin"})
	t2 := mint(t, token.Claims{"sub": "user-2", "role": "member"})

	dec := newCounting()
	p := NewMemoryProvider(t1)
	a, err := NewAccessor(p, dec, nil)
	require.NoError(t, err)

	assert.Equal(t, "user-1", a.Use().User.Subject())

	v := a.Use()
	v.Login(t2)

	got := a.Use()
	assert.Equal(t, t2, got.Token)
	assert.Equal(t, token.Claims{"sub": "user-2", "role": "member"}, got.User)
	assert.Equal(t, int64(2), dec.calls.Load())
}

func TestAccessor_LogoutThenSameTokenDecodesAgain(t *testing.T) {
	t.Parallel()

	raw := mint(t, token.Claims{"sub": "user-1"})
	dec := newCounting()
	p := NewMemoryProvider(raw)
	a, err := NewAccessor(p, dec, nil)
	require.NoError(t, err)

	_ = a.Use()
	p.Logout()
	assert.Nil(t, a.Use().User)
	p.Login(raw)
	assert.Equal(t, "user-1", a.Use().User.Subject())
	assert.Equal(t, int64(2), dec.calls.Load())
}

func TestAccessor_ConcurrentUseDecodesOnce(t *testing.T) {
	t.Parallel()

	raw := mint(t, token.Claims{"sub": "user-1"})
	dec := newCounting()
	a, err := NewAccessor(NewMemoryProvider(raw), dec, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "user-1", a.Use().User.Subject())
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), dec.calls.Load())
}

func TestUse_PanicsWithoutProvider(t *testing.T) {
	t.Parallel()

	for i := 0; i < 3; i++ {
		assert.PanicsWithError(t, ErrNoProvider.Error(), func() {
			_ = Use(context.Background())
		})
	}
}

func TestUse_FromContext(t *testing.T) {
	t.Parallel()

	raw := mint(t, token.Claims{"sub": "user-1"})
	a, err := NewAccessor(NewMemoryProvider(raw), token.NewJWTDecoder(), nil)
	require.NoError(t, err)

	ctx := NewContext(context.Background(), a)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, "user-1", Use(ctx).User.Subject())
}
