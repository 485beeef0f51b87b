package interfaces

import (
	"context"

	"seguro_imovel/internal/domain/insurer"
)

// IInsurerGateway abstracts the external property insurer.
//
// Implementations own token acquisition, identity headers and the bounded
// fallback strategy; callers see either a normalized result or a typed
// insurer error (AuthError / UpstreamError).
type IInsurerGateway interface {
	CreateQuote(ctx context.Context, payload insurer.QuotationRequest) (insurer.QuoteResult, error)
}
