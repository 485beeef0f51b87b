package request

import (
	"strings"

	"seguro_imovel/internal/domain/entities"
)

// RejectQuoteRequest carries the mandatory justification for a rejection.
type RejectQuoteRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (r RejectQuoteRequest) ResolveReason() string {
	return strings.TrimSpace(r.Reason)
}

// ConfirmPaymentRequest is the payment selection sent after the associate
// picks one of the offered payment options.
type ConfirmPaymentRequest struct {
	PaymentMode   int    `json:"paymentMode" binding:"required"`
	PaymentOption string `json:"paymentOption"`
	PayerDocument string `json:"payerDocument"`
}

func (r ConfirmPaymentRequest) ToPaymentData() entities.PaymentDataRequest {
	return entities.PaymentDataRequest{
		PaymentMode:   r.PaymentMode,
		PaymentOption: strings.TrimSpace(r.PaymentOption),
		PayerDocument: strings.TrimSpace(r.PayerDocument),
	}
}
