package insurer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	domain "seguro_imovel/internal/domain/insurer"
	"seguro_imovel/internal/usecase/interfaces"
)

var ErrMissingQuoteURL = errors.New("missing insurer quote URL")

// baselineCoverageCode is the mandatory basic coverage used by the minimal
// viability probe (fire/lightning/explosion, padded to the wire width).
const baselineCoverageCode = "0001"

// Identity headers attached to every quotation call. Server-side constants
// from Config; never taken from the payload.
const (
	headerPartnerCode = "X-Partner-Code"
	headerBrokerCode  = "X-Broker-Code"
	headerUserCode    = "X-User-Code"
)

// AllianzGateway talks to the insurer's quotation endpoint.
//
// Besides the plain POST it owns the bounded fallback strategy: a "not
// found" answer from the insurer means the coverage/payment combination is
// not directly quotable, and is probed twice (payment-method listing, then
// baseline coverage) before the original failure is surfaced.
type AllianzGateway struct {
	cfg    Config
	client Doer
	tokens *TokenManager
}

var _ interfaces.IInsurerGateway = (*AllianzGateway)(nil)

func NewAllianzGateway(cfg Config) (*AllianzGateway, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	return NewAllianzGatewayWithClient(cfg, client)
}

// NewAllianzGatewayWithClient injects the HTTP client; used by tests.
func NewAllianzGatewayWithClient(cfg Config, client Doer) (*AllianzGateway, error) {
	if cfg.QuoteURL == "" {
		return nil, ErrMissingQuoteURL
	}
	log.Printf("[insurer][gateway] initialized quote_url=%s partner=%s", cfg.QuoteURL, cfg.PartnerCode)
	return &AllianzGateway{
		cfg:    cfg,
		client: client,
		tokens: NewTokenManager(cfg, client),
	}, nil
}

// CreateQuote posts the quotation payload, applying the two-stage fallback
// on a "not quotable" answer. On an exhausted fallback the returned
// UpstreamError carries the ORIGINAL status and body, not the last probe's.
func (g *AllianzGateway) CreateQuote(ctx context.Context, payload domain.QuotationRequest) (domain.QuoteResult, error) {
	token, err := g.tokens.GetToken(ctx)
	if err != nil {
		return domain.QuoteResult{}, err
	}

	status, body, err := g.post(ctx, token, payload)
	if err != nil {
		log.Printf("[insurer][gateway] quote transport failed err=%v", err)
		return domain.QuoteResult{}, &domain.UpstreamError{Err: err}
	}
	if isSuccess(status) {
		log.Printf("[insurer][gateway] quote success status=%d body_len=%d", status, len(body))
		return normalizeQuoteResponse(body), nil
	}
	if !isNotQuotable(status) {
		log.Printf("[insurer][gateway] quote rejected status=%d", status)
		return domain.QuoteResult{}, &domain.UpstreamError{Status: status, Body: string(body)}
	}

	// Stage 1: ask for the available payment methods instead of a
	// finalized price.
	log.Printf("[insurer][gateway] quote not quotable status=%d; probing payment-method listing", status)
	probe := payload
	probe.PaymentData.PaymentMode = 0
	probe.PaymentData.PaymentOption = ""
	if st, b, perr := g.post(ctx, token, probe); perr == nil && isSuccess(st) {
		log.Printf("[insurer][gateway] payment-method listing recovered original status=%d", status)
		return normalizeQuoteResponse(b), nil
	}

	// Stage 2: minimal viability probe with only the mandatory baseline
	// coverage.
	log.Printf("[insurer][gateway] listing probe failed; probing baseline coverage")
	probe = payload
	probe.ListCoverage = []domain.Coverage{{CoverageCode: baselineCoverageCode, SumInsured: 0}}
	if st, b, perr := g.post(ctx, token, probe); perr == nil && isSuccess(st) {
		log.Printf("[insurer][gateway] baseline probe recovered original status=%d", status)
		return normalizeQuoteResponse(b), nil
	}

	log.Printf("[insurer][gateway] fallback exhausted status=%d", status)
	return domain.QuoteResult{}, &domain.UpstreamError{Status: status, Body: string(body)}
}

func (g *AllianzGateway) post(ctx context.Context, token string, payload domain.QuotationRequest) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.QuoteURL, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(headerPartnerCode, g.cfg.PartnerCode)
	req.Header.Set(headerBrokerCode, g.cfg.BrokerCode)
	req.Header.Set(headerUserCode, g.cfg.UserCode)

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// isNotQuotable identifies the upstream answer that triggers the fallback
// probes. Kept in one place: the vendor never documented which other codes
// should widen this set.
func isNotQuotable(status int) bool {
	return status == http.StatusNotFound
}
