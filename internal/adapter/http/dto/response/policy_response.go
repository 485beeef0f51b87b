package response

import (
	"time"

	"seguro_imovel/internal/domain/entities"
)

type PolicyResponse struct {
	ID           string    `json:"id"`
	QuoteID      string    `json:"quote_id"`
	PolicyNumber string    `json:"policy_number"`
	ValidFrom    time.Time `json:"valid_from"`
	ValidTo      time.Time `json:"valid_to"`
	Premium      float64   `json:"premium"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromPolicy(p entities.Policy) PolicyResponse {
	return PolicyResponse{
		ID:           p.ID,
		QuoteID:      p.QuoteID,
		PolicyNumber: p.PolicyNumber,
		ValidFrom:    p.ValidFrom,
		ValidTo:      p.ValidTo,
		Premium:      p.Premium,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
}

func FromPolicies(policies []entities.Policy) []PolicyResponse {
	out := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, FromPolicy(p))
	}
	return out
}
