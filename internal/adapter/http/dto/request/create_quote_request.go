package request

import (
	"encoding/json"
	"strings"

	"seguro_imovel/internal/domain/entities"
)

// CreateQuoteRequest is the public payload for quote creation.
//
// PartnerData is accepted for backward compatibility with older clients that
// used to send partner identification in the body. It is never forwarded:
// partner identity is server-side configuration.
type CreateQuoteRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`

	ClientName string `json:"clientName"`
	CpfCnpj    string `json:"cpfCnpj"`

	InitialDateInsurance string `json:"initialDateInsurance" binding:"required"`

	PropertyUse  int `json:"propertyUse"`
	ActivityType int `json:"activityType"`
	BuyerType    int `json:"buyerType"`

	ListCoverage []CoverageRequest `json:"listCoverage" binding:"required,min=1"`

	PaymentData PaymentDataRequest `json:"paymentData"`

	PartnerData json.RawMessage `json:"partnerData,omitempty"`
}

type CoverageRequest struct {
	Code       string  `json:"code" binding:"required"`
	SumInsured float64 `json:"sumInsured"`
}

type PaymentDataRequest struct {
	PaymentMode   int    `json:"paymentMode"`
	PaymentOption string `json:"paymentOption"`
	PayerDocument string `json:"payerDocument"`
}

// HasPartnerData reports whether the client sent the deprecated block.
func (r CreateQuoteRequest) HasPartnerData() bool {
	trimmed := strings.TrimSpace(string(r.PartnerData))
	return trimmed != "" && trimmed != "null"
}

// ToQuoteRequest converts to the internal request, dropping PartnerData.
func (r CreateQuoteRequest) ToQuoteRequest() entities.QuoteRequest {
	coverages := make([]entities.CoverageRequest, 0, len(r.ListCoverage))
	for _, cov := range r.ListCoverage {
		coverages = append(coverages, entities.CoverageRequest{
			Code:       cov.Code,
			SumInsured: cov.SumInsured,
		})
	}

	return entities.QuoteRequest{
		PropertyID:           strings.TrimSpace(r.PropertyID),
		ClientName:           strings.TrimSpace(r.ClientName),
		CpfCnpj:              strings.TrimSpace(r.CpfCnpj),
		InitialDateInsurance: strings.TrimSpace(r.InitialDateInsurance),
		PropertyUse:          r.PropertyUse,
		ActivityType:         r.ActivityType,
		BuyerType:            r.BuyerType,
		ListCoverage:         coverages,
		PaymentData: entities.PaymentDataRequest{
			PaymentMode:   r.PaymentData.PaymentMode,
			PaymentOption: strings.TrimSpace(r.PaymentData.PaymentOption),
			PayerDocument: strings.TrimSpace(r.PaymentData.PayerDocument),
		},
	}
}
