package insurer

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	domain "seguro_imovel/internal/domain/insurer"
)

// tokenSafetyMargin is subtracted from the server-provided lifetime so a
// token is refreshed before clock skew or request latency can expire it
// mid-flight.
const tokenSafetyMargin = 5 * time.Minute

// Doer is the subset of *http.Client the integration needs; injected so
// tests can fake the insurer.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenManager acquires and caches the OAuth bearer token used by the
// quotation calls.
//
// The cache is shared across concurrent requests. Callers racing on an
// expired token may each trigger a refresh; the duplicates are tolerated
// (last writer wins) because the token endpoint is idempotent and
// low-volume. The mutex only guards the cached fields, it is not held
// during the network exchange.
type TokenManager struct {
	cfg    Config
	client Doer
	now    func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenManager(cfg Config, client Doer) *TokenManager {
	return &TokenManager{cfg: cfg, client: client, now: time.Now}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// GetToken returns the cached token when still valid, refreshing it through
// a client-credential exchange otherwise.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.token != "" && m.now().Before(m.expiry) {
		token := m.token
		m.mu.Unlock()
		return token, nil
	}
	m.mu.Unlock()

	if m.cfg.Username == "" || m.cfg.Password == "" {
		return "", &domain.AuthError{Body: "missing insurer credentials"}
	}

	log.Printf("[insurer][token] refreshing bearer token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.TokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", &domain.AuthError{Body: err.Error()}
	}
	req.SetBasicAuth(m.cfg.Username, m.cfg.Password)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", &domain.AuthError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[insurer][token] exchange failed status=%d", resp.StatusCode)
		return "", &domain.AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: err.Error()}
	}
	if tr.AccessToken == "" {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: "token response missing access_token"}
	}

	expiry := m.now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSafetyMargin)

	m.mu.Lock()
	m.token = tr.AccessToken
	m.expiry = expiry
	m.mu.Unlock()

	log.Printf("[insurer][token] token refreshed expires_in=%ds", tr.ExpiresIn)
	return tr.AccessToken, nil
}
