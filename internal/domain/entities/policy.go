package entities

import "time"

// PolicyStatus represents the lifecycle of an issued policy.
//
// In the current scope policies are only issued (active); cancellation is
// handled downstream by the policy-administration system.

type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

// Policy is the insurance contract issued when a quote is approved.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//   - GSI2 (quote_id-index): quote_id
//
// Exactly one policy exists per approved quote; the quote-side status guard
// enforces that, not the policy table.

type Policy struct {
	ID           string       `json:"id"`
	QuoteID      string       `json:"quote_id"`
	UserID       string       `json:"user_id,omitempty"`
	PolicyNumber string       `json:"policy_number"`
	ValidFrom    time.Time    `json:"valid_from"`
	ValidTo      time.Time    `json:"valid_to"`
	Premium      float64      `json:"premium"`
	Status       PolicyStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}
