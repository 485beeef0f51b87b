package insurer

import (
	"encoding/json"
	"strings"

	domain "seguro_imovel/internal/domain/insurer"
)

// Upstream responses arrive in two known shapes: flat fields at the top
// level, or the same fields nested under a return.value envelope. Both are
// modeled explicitly instead of probing an untyped map at call sites.

type upstreamQuote struct {
	QuotationNumber flexString `json:"quotationNumber"`
	OperationNumber flexString `json:"operationNumber"`
	ID              flexString `json:"id"`
	QuoteID         flexString `json:"quoteId"`

	TotalPremium *float64 `json:"totalPremium"`
	Premium      *float64 `json:"premium"`

	PaymentOptions json.RawMessage `json:"paymentOptions"`
}

type upstreamEnvelope struct {
	Return *struct {
		Value *upstreamQuote `json:"value"`
	} `json:"return"`
}

// normalizeQuoteResponse extracts the canonical result from an insurer
// body. Extraction is best effort; Raw always retains the full original
// body for audit.
func normalizeQuoteResponse(body []byte) domain.QuoteResult {
	result := domain.QuoteResult{Raw: append(json.RawMessage(nil), body...)}

	var envelope upstreamEnvelope
	var flat upstreamQuote
	_ = json.Unmarshal(body, &envelope)
	_ = json.Unmarshal(body, &flat)

	nested := upstreamQuote{}
	if envelope.Return != nil && envelope.Return.Value != nil {
		nested = *envelope.Return.Value
	}

	// Nested fields win over flat ones; within each shape the quotation
	// number wins over the operation number / generic id.
	result.ExternalQuoteID = firstNonEmpty(
		string(nested.QuotationNumber),
		string(nested.OperationNumber),
		string(flat.ID),
		string(flat.QuoteID),
		string(flat.QuotationNumber),
		string(flat.OperationNumber),
	)

	switch {
	case nested.TotalPremium != nil:
		result.PremiumTotal = nested.TotalPremium
	case nested.Premium != nil:
		result.PremiumTotal = nested.Premium
	case flat.Premium != nil:
		result.PremiumTotal = flat.Premium
	case flat.TotalPremium != nil:
		result.PremiumTotal = flat.TotalPremium
	}

	if isPresent(nested.PaymentOptions) {
		result.PaymentOptions = nested.PaymentOptions
	} else if isPresent(flat.PaymentOptions) {
		result.PaymentOptions = flat.PaymentOptions
	}

	return result
}

// flexString tolerates upstream fields that are sometimes JSON strings and
// sometimes JSON numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
