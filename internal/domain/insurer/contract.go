// Package insurer holds the wire contract shared with the property insurer:
// the outbound quotation payload, the normalized quotation result and the
// error types raised by the integration.
package insurer

import "encoding/json"

// QuotationRequest is the payload POSTed to the insurer's quotation endpoint.
//
// The insurer contract requires every key to be present even when
// semantically absent, so optional fields carry neutral defaults instead of
// omitempty. Partner/broker identifiers travel only in HTTP headers, never
// in this body.

type QuotationRequest struct {
	InitialDateInsurance string `json:"initialDateInsurance"`

	PropertyUse  int `json:"propertyUse"`
	ActivityType int `json:"activityType"`
	BuyerType    int `json:"buyerType"`

	InsuredData  InsuredData  `json:"insuredData"`
	RiskLocation RiskLocation `json:"riskLocation"`

	ListCoverage []Coverage `json:"listCoverage"`

	PaymentData PaymentData `json:"paymentData"`
}

type InsuredData struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type RiskLocation struct {
	HousingType      int         `json:"housingType"`
	ConstructionType int         `json:"constructionType"`
	Address          WireAddress `json:"address"`
}

type WireAddress struct {
	Street   string `json:"street"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

type Coverage struct {
	CoverageCode string  `json:"coverageCode"`
	SumInsured   float64 `json:"sumInsured"`
}

// PaymentData selects how the quotation is priced. PaymentMode 0 asks for
// the list of available payment methods instead of a finalized premium.
type PaymentData struct {
	PaymentMode   int       `json:"paymentMode"`
	PaymentOption string    `json:"paymentOption"`
	Payer         PayerData `json:"payer"`
}

type PayerData struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// QuoteResult is the canonical outcome extracted from an insurer response.
//
// Raw always retains the full original body for audit, regardless of what
// could be extracted.
type QuoteResult struct {
	ExternalQuoteID string
	PremiumTotal    *float64
	PaymentOptions  json.RawMessage
	Raw             json.RawMessage
}

// HasPaymentOptions reports whether the insurer answered with a
// payment-method listing instead of a finalized premium.
func (r QuoteResult) HasPaymentOptions() bool {
	return len(r.PaymentOptions) > 0 && string(r.PaymentOptions) != "null"
}
