package interfaces

import (
	"context"

	"seguro_imovel/internal/domain/entities"
)

// IPolicyRepository abstracts DynamoDB persistence for Policy.

type IPolicyRepository interface {
	Create(ctx context.Context, p entities.Policy) (entities.Policy, error)
	GetByID(ctx context.Context, id string) (entities.Policy, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Policy, error)
}
