package insurer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "seguro_imovel/internal/domain/insurer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// insurerStub scripts the insurer: a token endpoint plus a sequence of
// quote-endpoint responses, recording every quote payload received.
type insurerStub struct {
	t         *testing.T
	responses []stubResponse
	payloads  []domain.QuotationRequest
	headers   []http.Header
}

type stubResponse struct {
	status int
	body   string
}

func newInsurerStub(t *testing.T, responses ...stubResponse) (*insurerStub, *httptest.Server) {
	t.Helper()
	stub := &insurerStub{t: t, responses: responses}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	})
	mux.HandleFunc("/quotes", func(w http.ResponseWriter, r *http.Request) {
		var payload domain.QuotationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		stub.payloads = append(stub.payloads, payload)
		stub.headers = append(stub.headers, r.Header.Clone())

		idx := len(stub.payloads) - 1
		require.Less(t, idx, len(stub.responses), "unexpected extra quote call")
		resp := stub.responses[idx]
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return stub, srv
}

func gatewayConfig(baseURL string) Config {
	return Config{
		TokenURL:    baseURL + "/oauth/token",
		QuoteURL:    baseURL + "/quotes",
		Username:    "partner-user",
		Password:    "partner-pass",
		PartnerCode: "P-77",
		BrokerCode:  "B-12",
		UserCode:    "U-9",
	}
}

func samplePayload() domain.QuotationRequest {
	return domain.QuotationRequest{
		InitialDateInsurance: "2026-09-01",
		PropertyUse:          1,
		BuyerType:            1,
		ListCoverage: []domain.Coverage{
			{CoverageCode: "0002", SumInsured: 50_000},
		},
		PaymentData: domain.PaymentData{PaymentMode: 2, PaymentOption: "3"},
	}
}

func newGatewayForTest(t *testing.T, srv *httptest.Server) *AllianzGateway {
	t.Helper()
	g, err := NewAllianzGatewayWithClient(gatewayConfig(srv.URL), srv.Client())
	require.NoError(t, err)
	return g
}

func TestAllianzGateway_SuccessFirstAttempt(t *testing.T) {
	stub, srv := newInsurerStub(t, stubResponse{
		status: http.StatusOK,
		body:   `{"return":{"value":{"quotationNumber":123456,"totalPremium":1890.55}}}`,
	})
	g := newGatewayForTest(t, srv)

	result, err := g.CreateQuote(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "123456", result.ExternalQuoteID)
	require.NotNil(t, result.PremiumTotal)
	assert.InDelta(t, 1890.55, *result.PremiumTotal, 0.001)
	assert.JSONEq(t, `{"return":{"value":{"quotationNumber":123456,"totalPremium":1890.55}}}`, string(result.Raw))

	// One quote call, carrying bearer token and fixed identity headers.
	require.Len(t, stub.headers, 1)
	h := stub.headers[0]
	assert.Equal(t, "Bearer tok-1", h.Get("Authorization"))
	assert.Equal(t, "P-77", h.Get(headerPartnerCode))
	assert.Equal(t, "B-12", h.Get(headerBrokerCode))
	assert.Equal(t, "U-9", h.Get(headerUserCode))
}

func TestAllianzGateway_NotFoundRecoversWithPaymentListing(t *testing.T) {
	stub, srv := newInsurerStub(t,
		stubResponse{status: http.StatusNotFound, body: `{"message":"combination not quotable"}`},
		stubResponse{status: http.StatusOK, body: `{"id":"Q-9","paymentOptions":[{"code":1},{"code":2}]}`},
	)
	g := newGatewayForTest(t, srv)

	result, err := g.CreateQuote(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "Q-9", result.ExternalQuoteID)
	assert.True(t, result.HasPaymentOptions())

	require.Len(t, stub.payloads, 2)
	// The probe forces listing mode and drops the payment option.
	assert.Equal(t, 0, stub.payloads[1].PaymentData.PaymentMode)
	assert.Empty(t, stub.payloads[1].PaymentData.PaymentOption)
	// The original coverage selection is untouched by stage one.
	assert.Equal(t, samplePayload().ListCoverage, stub.payloads[1].ListCoverage)
}

func TestAllianzGateway_BaselineProbeRecovers(t *testing.T) {
	stub, srv := newInsurerStub(t,
		stubResponse{status: http.StatusNotFound, body: `{"message":"nope"}`},
		stubResponse{status: http.StatusNotFound, body: `{"message":"still nope"}`},
		stubResponse{status: http.StatusOK, body: `{"quoteId":"Q-77","premium":120.0}`},
	)
	g := newGatewayForTest(t, srv)

	result, err := g.CreateQuote(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "Q-77", result.ExternalQuoteID)

	require.Len(t, stub.payloads, 3)
	probe := stub.payloads[2]
	require.Len(t, probe.ListCoverage, 1)
	assert.Equal(t, baselineCoverageCode, probe.ListCoverage[0].CoverageCode)
	assert.Zero(t, probe.ListCoverage[0].SumInsured)
}

func TestAllianzGateway_FallbackExhaustedKeepsOriginalFailure(t *testing.T) {
	stub, srv := newInsurerStub(t,
		stubResponse{status: http.StatusNotFound, body: `{"message":"original failure"}`},
		stubResponse{status: http.StatusNotFound, body: `{"message":"probe 1"}`},
		stubResponse{status: http.StatusNotFound, body: `{"message":"probe 2"}`},
	)
	g := newGatewayForTest(t, srv)

	_, err := g.CreateQuote(context.Background(), samplePayload())
	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusNotFound, upErr.Status)
	assert.Contains(t, upErr.Body, "original failure")
	assert.Len(t, stub.payloads, 3)
}

func TestAllianzGateway_NonFallbackStatusFailsImmediately(t *testing.T) {
	stub, srv := newInsurerStub(t,
		stubResponse{status: http.StatusBadRequest, body: `{"message":"invalid payload"}`},
	)
	g := newGatewayForTest(t, srv)

	_, err := g.CreateQuote(context.Background(), samplePayload())
	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusBadRequest, upErr.Status)
	assert.Len(t, stub.payloads, 1)
}

func TestAllianzGateway_TokenFailureShortCircuits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"access_denied"}`))
	})
	mux.HandleFunc("/quotes", func(w http.ResponseWriter, r *http.Request) {
		t.Error("quote endpoint must not be called without a token")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, err := NewAllianzGatewayWithClient(gatewayConfig(srv.URL), srv.Client())
	require.NoError(t, err)

	_, err = g.CreateQuote(context.Background(), samplePayload())
	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusForbidden, authErr.Status)
}

func TestAllianzGateway_TransportErrorIsUpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	})
	srv := httptest.NewServer(mux)

	cfg := gatewayConfig(srv.URL)
	cfg.QuoteURL = "http://127.0.0.1:1/quotes" // unroutable

	g, err := NewAllianzGatewayWithClient(cfg, srv.Client())
	require.NoError(t, err)
	defer srv.Close()

	_, err = g.CreateQuote(context.Background(), samplePayload())
	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Error(t, upErr.Err)
}

func TestNewAllianzGateway_RequiresQuoteURL(t *testing.T) {
	_, err := NewAllianzGatewayWithClient(Config{}, http.DefaultClient)
	require.ErrorIs(t, err, ErrMissingQuoteURL)
}
