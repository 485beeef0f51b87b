package usecase

import (
	"context"
	"errors"
	"strings"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/internal/usecase/interfaces"
)

var (
	ErrInvalidPolicyID = errors.New("invalid policy id")
	ErrPolicyNotFound  = errors.New("policy not found")
)

// IPolicyUseCase exposes read access to issued policies. Policies are only
// created by quote approval (see IQuoteUseCase.Approve).

type IPolicyUseCase interface {
	GetByID(ctx context.Context, id, ownerID string) (entities.Policy, error)
	ListByUser(ctx context.Context, ownerID string) ([]entities.Policy, error)
}

type PolicyUseCase struct {
	repo interfaces.IPolicyRepository
}

var _ IPolicyUseCase = (*PolicyUseCase)(nil)

func NewPolicyUseCase(repo interfaces.IPolicyRepository) *PolicyUseCase {
	return &PolicyUseCase{repo: repo}
}

func (u *PolicyUseCase) GetByID(ctx context.Context, id, ownerID string) (entities.Policy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Policy{}, ErrInvalidPolicyID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Policy{}, err
	}
	if p.ID == "" || (ownerID != "" && p.UserID != ownerID) {
		return entities.Policy{}, ErrPolicyNotFound
	}
	return p, nil
}

func (u *PolicyUseCase) ListByUser(ctx context.Context, ownerID string) ([]entities.Policy, error) {
	return u.repo.ListByUserID(ctx, ownerID)
}
