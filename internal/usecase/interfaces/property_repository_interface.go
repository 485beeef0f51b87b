package interfaces

import (
	"context"

	"seguro_imovel/internal/domain/entities"
)

// IPropertyRepository abstracts DynamoDB persistence for Property.

type IPropertyRepository interface {
	Create(ctx context.Context, p entities.Property) (entities.Property, error)
	GetByID(ctx context.Context, id string) (entities.Property, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Property, error)
	Update(ctx context.Context, p entities.Property) (entities.Property, error)
	Delete(ctx context.Context, id string) error
}
