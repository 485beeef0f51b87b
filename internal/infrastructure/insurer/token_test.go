package insurer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "seguro_imovel/internal/domain/insurer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDoer struct {
	inner Doer
	calls int
}

func (c *countingDoer) Do(req *http.Request) (*http.Response, error) {
	c.calls++
	return c.inner.Do(req)
}

func newTokenServer(t *testing.T, expiresIn int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "expected basic auth")
		assert.Equal(t, "partner-user", user)
		assert.Equal(t, "partner-pass", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fmt.Sprintf(`{"access_token":"tok-1","expires_in":%d}`, expiresIn)))
	}))
}

func tokenConfig(url string) Config {
	return Config{
		TokenURL: url,
		Username: "partner-user",
		Password: "partner-pass",
	}
}

func TestTokenManager_CachesWithinLifetime(t *testing.T) {
	srv := newTokenServer(t, 3600)
	defer srv.Close()

	doer := &countingDoer{inner: srv.Client()}
	tm := NewTokenManager(tokenConfig(srv.URL), doer)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return now }

	tok, err := tm.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, doer.calls)

	// Second call within the cached lifetime performs no network call.
	now = now.Add(30 * time.Minute)
	tok, err = tm.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, doer.calls)
}

func TestTokenManager_RefreshesAfterExpiry(t *testing.T) {
	srv := newTokenServer(t, 3600)
	defer srv.Close()

	doer := &countingDoer{inner: srv.Client()}
	tm := NewTokenManager(tokenConfig(srv.URL), doer)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return now }

	_, err := tm.GetToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, doer.calls)

	// The 5-minute safety margin makes a 3600s token stale after 55min.
	now = now.Add(56 * time.Minute)
	_, err = tm.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, doer.calls)
}

func TestTokenManager_MissingCredentials(t *testing.T) {
	tm := NewTokenManager(Config{TokenURL: "http://localhost"}, http.DefaultClient)

	_, err := tm.GetToken(context.Background())
	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Contains(t, authErr.Body, "missing insurer credentials")
}

func TestTokenManager_UpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	tm := NewTokenManager(tokenConfig(srv.URL), srv.Client())

	_, err := tm.GetToken(context.Background())
	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Contains(t, authErr.Body, "invalid_client")
}
