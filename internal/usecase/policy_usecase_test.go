package usecase

import (
	"context"
	"errors"
	"testing"

	"seguro_imovel/internal/domain/entities"
	mock_interfaces "seguro_imovel/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPolicyUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewPolicyUseCase(nil)
		_, err := uc.GetByID(context.Background(), "  ", "user-1")
		if !errors.Is(err, ErrInvalidPolicyID) {
			t.Fatalf("expected ErrInvalidPolicyID, got %v", err)
		}
	})

	t.Run("owned by someone else reads as not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "pol-1").Return(entities.Policy{ID: "pol-1", UserID: "other"}, nil)

		_, err := uc.GetByID(context.Background(), "pol-1", "user-1")
		if !errors.Is(err, ErrPolicyNotFound) {
			t.Fatalf("expected ErrPolicyNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "pol-1").Return(entities.Policy{ID: "pol-1", UserID: "user-1"}, nil)

		p, err := uc.GetByID(context.Background(), "pol-1", "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "pol-1" {
			t.Fatalf("unexpected policy: %+v", p)
		}
	})
}
