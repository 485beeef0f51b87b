package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/internal/domain/risk"
	"seguro_imovel/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidPropertyID    = errors.New("invalid property id")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrInvalidOwnerDocument = errors.New("invalid owner document")
	ErrMissingAddress       = errors.New("address, city, state and zip code are required")
)

// IPropertyUseCase exposes property registration operations.
//
// The risk category is derived on create and re-derived whenever area,
// construction year or estimated value change; callers cannot set it.

type IPropertyUseCase interface {
	Create(ctx context.Context, p entities.Property, ownerID string) (entities.Property, error)
	GetByID(ctx context.Context, id, ownerID string) (entities.Property, error)
	ListByUser(ctx context.Context, ownerID string) ([]entities.Property, error)
	Update(ctx context.Context, id string, p entities.Property, ownerID string) (entities.Property, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type PropertyUseCase struct {
	repo interfaces.IPropertyRepository
}

var _ IPropertyUseCase = (*PropertyUseCase)(nil)

func NewPropertyUseCase(repo interfaces.IPropertyRepository) *PropertyUseCase {
	return &PropertyUseCase{repo: repo}
}

func (u *PropertyUseCase) Create(ctx context.Context, p entities.Property, ownerID string) (entities.Property, error) {
	if err := validateProperty(p); err != nil {
		return entities.Property{}, err
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.UserID = ownerID
	p.RiskCategory = risk.Classify(p.Area, p.ConstructionYear, p.EstimatedValue)
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Property{}, err
	}
	log.Printf("[property][usecase] create success property_id=%s risk_category=%s", created.ID, created.RiskCategory)
	return created, nil
}

func (u *PropertyUseCase) GetByID(ctx context.Context, id, ownerID string) (entities.Property, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Property{}, ErrInvalidPropertyID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Property{}, err
	}
	if p.ID == "" || p.UserID != ownerID {
		return entities.Property{}, ErrPropertyNotFound
	}
	return p, nil
}

func (u *PropertyUseCase) ListByUser(ctx context.Context, ownerID string) ([]entities.Property, error) {
	return u.repo.ListByUserID(ctx, ownerID)
}

func (u *PropertyUseCase) Update(ctx context.Context, id string, p entities.Property, ownerID string) (entities.Property, error) {
	current, err := u.GetByID(ctx, id, ownerID)
	if err != nil {
		return entities.Property{}, err
	}
	if err := validateProperty(p); err != nil {
		return entities.Property{}, err
	}

	p.ID = current.ID
	p.UserID = current.UserID
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.RiskCategory = risk.Classify(p.Area, p.ConstructionYear, p.EstimatedValue)

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		return entities.Property{}, err
	}
	log.Printf("[property][usecase] update success property_id=%s risk_category=%s", updated.ID, updated.RiskCategory)
	return updated, nil
}

func (u *PropertyUseCase) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := u.GetByID(ctx, id, ownerID); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func validateProperty(p entities.Property) error {
	if len(keepDigits(p.OwnerDocument)) < 11 {
		return ErrInvalidOwnerDocument
	}
	if strings.TrimSpace(p.Address) == "" || strings.TrimSpace(p.City) == "" ||
		strings.TrimSpace(p.State) == "" || strings.TrimSpace(p.ZipCode) == "" {
		return ErrMissingAddress
	}
	return nil
}
