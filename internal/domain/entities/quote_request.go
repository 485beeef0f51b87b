package entities

// QuoteRequest is the normalized internal request persisted with a quote.
//
// It is stored as the quote's `request` blob for audit and is the input for
// re-quoting when the associate confirms a payment selection. The JSON field
// names follow the internal API contract (camelCase).

type QuoteRequest struct {
	PropertyID string `json:"propertyId"`

	ClientName string `json:"clientName"`
	CpfCnpj    string `json:"cpfCnpj"`

	InitialDateInsurance string `json:"initialDateInsurance"`

	// Optional classification fields; the payload builder applies the
	// contract defaults when zero.
	PropertyUse  int `json:"propertyUse,omitempty"`
	ActivityType int `json:"activityType,omitempty"`
	BuyerType    int `json:"buyerType,omitempty"`

	ListCoverage []CoverageRequest `json:"listCoverage"`

	PaymentData PaymentDataRequest `json:"paymentData"`

	// Audit blocks, filled by the payload builder.
	RiskDataAddress  *RiskDataAddress  `json:"riskDataAddress,omitempty"`
	RiskCategoryData *RiskCategoryData `json:"riskCategoryData,omitempty"`
}

type CoverageRequest struct {
	Code       string  `json:"code"`
	SumInsured float64 `json:"sumInsured"`
}

// PaymentDataRequest is the payment block of the internal request.
//
// PaymentMode 0 asks the insurer for the list of available payment methods
// instead of a finalized price.
type PaymentDataRequest struct {
	PaymentMode   int    `json:"paymentMode"`
	PaymentOption string `json:"paymentOption,omitempty"`
	PayerDocument string `json:"payerDocument,omitempty"`
}

// RiskDataAddress is the property address snapshot stored with the quote.
type RiskDataAddress struct {
	Address  string `json:"address"`
	Number   string `json:"number,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

// RiskCategoryData is the risk snapshot stored with the quote.
type RiskCategoryData struct {
	RiskCategory     RiskCategory `json:"riskCategory"`
	Area             *float64     `json:"area,omitempty"`
	ConstructionYear *int         `json:"constructionYear,omitempty"`
	EstimatedValue   *float64     `json:"estimatedValue,omitempty"`
}
