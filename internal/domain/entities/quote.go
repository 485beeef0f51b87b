package entities

import (
	"encoding/json"
	"time"
)

// QuoteStatus represents the lifecycle of an insurance quote.
//
// Transitions are monotonic: pending|payment-options -> approved|rejected.
// The only backward edge is payment-options -> pending, taken when the
// associate confirms a payment selection and the insurer re-prices the quote.
//
//go:generate stringer -type=QuoteStatus

type QuoteStatus string

const (
	QuoteStatusPending        QuoteStatus = "pending"
	QuoteStatusPaymentOptions QuoteStatus = "payment-options"
	QuoteStatusApproved       QuoteStatus = "approved"
	QuoteStatusRejected       QuoteStatus = "rejected"
)

// Terminal reports whether no further status-changing operation is legal.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusApproved || s == QuoteStatusRejected
}

// Quote is the insurance quotation persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//   - GSI2 (status-index): status (PK) + created_at (SK)
//
// Insurer payload:
//   - Request keeps the normalized internal request (JSON) for audit and for
//     re-quoting on payment confirmation.
//   - RawResponse keeps the original insurer body (JSON) for traceability.
//     (Upstream response schemas vary; we never reconstruct them from the
//     extracted fields.)

type Quote struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id,omitempty"`
	PropertyID string      `json:"property_id,omitempty"`
	Status     QuoteStatus `json:"status"`

	ExternalQuoteID string   `json:"external_quote_id,omitempty"`
	PremiumTotal    *float64 `json:"premium_total,omitempty"`

	Request        json.RawMessage `json:"request,omitempty"`
	PaymentOptions json.RawMessage `json:"payment_options,omitempty"`
	RawResponse    json.RawMessage `json:"raw_response,omitempty"`

	RejectionReason string `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuotePatch carries the fields refreshed together with a status transition.
// Nil fields are left untouched by the repository.
type QuotePatch struct {
	ExternalQuoteID *string
	PremiumTotal    *float64
	Request         json.RawMessage
	PaymentOptions  json.RawMessage
	RawResponse     json.RawMessage
	RejectionReason *string
}
