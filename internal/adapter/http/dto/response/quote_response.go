package response

import (
	"encoding/json"
	"time"

	"seguro_imovel/internal/domain/entities"
)

type QuoteResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id,omitempty"`
	Status     string `json:"status"`

	ExternalQuoteID string   `json:"external_quote_id,omitempty"`
	PremiumTotal    *float64 `json:"premium_total,omitempty"`

	PaymentOptions json.RawMessage `json:"payment_options,omitempty"`

	RejectionReason string `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:              q.ID,
		PropertyID:      q.PropertyID,
		Status:          string(q.Status),
		ExternalQuoteID: q.ExternalQuoteID,
		PremiumTotal:    q.PremiumTotal,
		PaymentOptions:  q.PaymentOptions,
		RejectionReason: q.RejectionReason,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}
