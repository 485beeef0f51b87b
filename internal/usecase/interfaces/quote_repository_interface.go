package interfaces

import (
	"context"

	"seguro_imovel/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// UpdateStatus must be conditional: the write succeeds only while the stored
// status still equals `from`. On a lost race (or missing item) it returns an
// empty Quote and a nil error, mirroring the not-found convention of the
// other methods. This is the compare-and-swap that keeps two concurrent
// approvals from both issuing a policy.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error)
	ListPending(ctx context.Context) ([]entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.QuoteStatus, patch entities.QuotePatch) (entities.Quote, error)
}
