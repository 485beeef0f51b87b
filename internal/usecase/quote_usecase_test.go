package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/internal/domain/insurer"
	mock_interfaces "seguro_imovel/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type quoteMocks struct {
	repo     *mock_interfaces.MockIQuoteRepository
	policies *mock_interfaces.MockIPolicyRepository
	props    *mock_interfaces.MockIPropertyRepository
	gateway  *mock_interfaces.MockIInsurerGateway
}

func newQuoteUseCaseForTest(t *testing.T) (*QuoteUseCase, quoteMocks) {
	ctrl := gomock.NewController(t)
	m := quoteMocks{
		repo:     mock_interfaces.NewMockIQuoteRepository(ctrl),
		policies: mock_interfaces.NewMockIPolicyRepository(ctrl),
		props:    mock_interfaces.NewMockIPropertyRepository(ctrl),
		gateway:  mock_interfaces.NewMockIInsurerGateway(ctrl),
	}
	return NewQuoteUseCase(m.repo, m.policies, m.props, m.gateway), m
}

func validCreateRequest() entities.QuoteRequest {
	return entities.QuoteRequest{
		PropertyID:           "prop-1",
		ClientName:           "Maria Silva",
		CpfCnpj:              "12345678909",
		InitialDateInsurance: "2026-09-01",
		ListCoverage:         []entities.CoverageRequest{{Code: "1", SumInsured: 100_000}},
		PaymentData:          entities.PaymentDataRequest{PaymentMode: 2, PaymentOption: "3"},
	}
}

func ownedProperty() entities.Property {
	return entities.Property{
		ID:            "prop-1",
		UserID:        "user-1",
		OwnerDocument: "11144477735",
		Type:          "Casa",
		Address:       "Rua A",
		City:          "São Paulo",
		State:         "SP",
		ZipCode:       "01310100",
	}
}

func TestQuoteUseCase_Create(t *testing.T) {
	t.Run("missing coverage", func(t *testing.T) {
		uc, _ := newQuoteUseCaseForTest(t)
		req := validCreateRequest()
		req.ListCoverage = nil
		_, err := uc.Create(context.Background(), req, "user-1")
		if !errors.Is(err, ErrMissingCoverage) {
			t.Fatalf("expected ErrMissingCoverage, got %v", err)
		}
	})

	t.Run("non-positive sum insured", func(t *testing.T) {
		uc, _ := newQuoteUseCaseForTest(t)
		req := validCreateRequest()
		req.ListCoverage[0].SumInsured = 0
		_, err := uc.Create(context.Background(), req, "user-1")
		if !errors.Is(err, ErrInvalidSumInsured) {
			t.Fatalf("expected ErrInvalidSumInsured, got %v", err)
		}
	})

	t.Run("property owned by someone else", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		prop := ownedProperty()
		prop.UserID = "someone-else"
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(prop, nil)

		_, err := uc.Create(context.Background(), validCreateRequest(), "user-1")
		if !errors.Is(err, ErrPropertyNotOwned) {
			t.Fatalf("expected ErrPropertyNotOwned, got %v", err)
		}
	})

	t.Run("payer document mismatch", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(ownedProperty(), nil)

		req := validCreateRequest()
		req.PaymentData.PayerDocument = "99999999999"
		_, err := uc.Create(context.Background(), req, "user-1")
		if !errors.Is(err, ErrPayerDocumentMismatch) {
			t.Fatalf("expected ErrPayerDocumentMismatch, got %v", err)
		}
	})

	t.Run("payer document matches ignoring formatting", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(ownedProperty(), nil)
		m.gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(insurer.QuoteResult{ExternalQuoteID: "EXT-1"}, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) { return q, nil },
		)

		req := validCreateRequest()
		req.PaymentData.PayerDocument = "111.444.777-35"
		if _, err := uc.Create(context.Background(), req, "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("insurer failure aborts with nothing persisted", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(ownedProperty(), nil)
		upErr := &insurer.UpstreamError{Status: 500, Body: "boom"}
		m.gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(insurer.QuoteResult{}, upErr)
		// No repo.Create expectation: persisting here would fail the test.

		_, err := uc.Create(context.Background(), validCreateRequest(), "user-1")
		var got *insurer.UpstreamError
		if !errors.As(err, &got) || got.Status != 500 {
			t.Fatalf("expected UpstreamError 500, got %v", err)
		}
	})

	t.Run("finalized quote is pending with audit blocks", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		premium := 1234.56
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(ownedProperty(), nil)
		m.gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(insurer.QuoteResult{
			ExternalQuoteID: "EXT-42",
			PremiumTotal:    &premium,
			Raw:             json.RawMessage(`{"quotationNumber":"EXT-42"}`),
		}, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Status != entities.QuoteStatusPending {
					t.Fatalf("expected pending, got %s", q.Status)
				}
				if q.ExternalQuoteID != "EXT-42" || q.PremiumTotal == nil || *q.PremiumTotal != premium {
					t.Fatalf("result not merged: %+v", q)
				}
				var stored entities.QuoteRequest
				if err := json.Unmarshal(q.Request, &stored); err != nil {
					t.Fatalf("stored request not json: %v", err)
				}
				if stored.RiskDataAddress == nil || stored.RiskDataAddress.City != "São Paulo" {
					t.Fatalf("missing riskDataAddress audit block: %+v", stored.RiskDataAddress)
				}
				if stored.RiskCategoryData == nil {
					t.Fatalf("missing riskCategoryData audit block")
				}
				return q, nil
			},
		)

		q, err := uc.Create(context.Background(), validCreateRequest(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.ID == "" {
			t.Fatalf("expected generated id")
		}
	})

	t.Run("payment options response parks quote in payment-options", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(ownedProperty(), nil)
		m.gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(insurer.QuoteResult{
			PaymentOptions: json.RawMessage(`[{"code":1},{"code":2}]`),
			Raw:            json.RawMessage(`{}`),
		}, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Status != entities.QuoteStatusPaymentOptions {
					t.Fatalf("expected payment-options, got %s", q.Status)
				}
				if len(q.PaymentOptions) == 0 {
					t.Fatalf("expected payment options retained")
				}
				return q, nil
			},
		)

		if _, err := uc.Create(context.Background(), validCreateRequest(), "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_ConfirmPayment(t *testing.T) {
	storedRequest := func() json.RawMessage {
		b, _ := json.Marshal(validCreateRequest())
		return b
	}

	t.Run("not found", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)
		_, err := uc.ConfirmPayment(context.Background(), "q-1", "user-1", entities.PaymentDataRequest{})
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("owned by someone else", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", UserID: "other"}, nil)
		_, err := uc.ConfirmPayment(context.Background(), "q-1", "user-1", entities.PaymentDataRequest{})
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("pending quote fails without insurer call", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID: "q-1", UserID: "user-1", Status: entities.QuoteStatusPending,
		}, nil)
		// No gateway expectation: an insurer call here would fail the test.

		_, err := uc.ConfirmPayment(context.Background(), "q-1", "user-1", entities.PaymentDataRequest{PaymentMode: 2})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("success re-quotes and returns to pending", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		premium := 999.99
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID: "q-1", UserID: "user-1", PropertyID: "prop-1",
			Status:  entities.QuoteStatusPaymentOptions,
			Request: storedRequest(),
		}, nil)
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(ownedProperty(), nil)
		m.gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload insurer.QuotationRequest) (insurer.QuoteResult, error) {
				if payload.PaymentData.PaymentMode != 4 || payload.PaymentData.PaymentOption != "2" {
					t.Fatalf("selection not merged into payload: %+v", payload.PaymentData)
				}
				return insurer.QuoteResult{ExternalQuoteID: "EXT-9", PremiumTotal: &premium, Raw: json.RawMessage(`{}`)}, nil
			},
		)
		m.repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPaymentOptions, entities.QuoteStatusPending, gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, _, to entities.QuoteStatus, patch entities.QuotePatch) (entities.Quote, error) {
				if patch.ExternalQuoteID == nil || *patch.ExternalQuoteID != "EXT-9" {
					t.Fatalf("expected refreshed external id, got %+v", patch)
				}
				return entities.Quote{ID: id, UserID: "user-1", Status: to, ExternalQuoteID: "EXT-9", PremiumTotal: &premium}, nil
			},
		)

		q, err := uc.ConfirmPayment(context.Background(), "q-1", "user-1", entities.PaymentDataRequest{PaymentMode: 4, PaymentOption: "2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusPending {
			t.Fatalf("expected pending, got %s", q.Status)
		}
	})

	t.Run("lost conditional write surfaces as state error", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID: "q-1", UserID: "user-1", PropertyID: "prop-1",
			Status:  entities.QuoteStatusPaymentOptions,
			Request: storedRequest(),
		}, nil)
		m.props.EXPECT().GetByID(gomock.Any(), "prop-1").Return(ownedProperty(), nil)
		m.gateway.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(insurer.QuoteResult{Raw: json.RawMessage(`{}`)}, nil)
		m.repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPaymentOptions, entities.QuoteStatusPending, gomock.Any()).Return(entities.Quote{}, nil)

		_, err := uc.ConfirmPayment(context.Background(), "q-1", "user-1", entities.PaymentDataRequest{PaymentMode: 2})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestQuoteUseCase_Approve(t *testing.T) {
	admin := entities.Actor{ID: "adm-1", Role: entities.RoleAdmin}

	t.Run("not admin", func(t *testing.T) {
		uc, _ := newQuoteUseCaseForTest(t)
		_, err := uc.Approve(context.Background(), "q-1", entities.Actor{ID: "u-1", Role: entities.RoleAssociate})
		if !errors.Is(err, ErrNotAdmin) {
			t.Fatalf("expected ErrNotAdmin, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)
		_, err := uc.Approve(context.Background(), "q-1", admin)
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("terminal states are hard", func(t *testing.T) {
		for _, status := range []entities.QuoteStatus{
			entities.QuoteStatusApproved,
			entities.QuoteStatusRejected,
			entities.QuoteStatusPaymentOptions,
		} {
			uc, m := newQuoteUseCaseForTest(t)
			m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: status}, nil)
			_, err := uc.Approve(context.Background(), "q-1", admin)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("status %s: expected ErrInvalidTransition, got %v", status, err)
			}
		}
	})

	t.Run("issues a one-year policy", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", UserID: "user-1", Status: entities.QuoteStatusPending}, nil)
		m.repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPending, entities.QuoteStatusApproved, gomock.Any()).Return(
			entities.Quote{ID: "q-1", UserID: "user-1", Status: entities.QuoteStatusApproved}, nil)
		m.policies.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Policy) (entities.Policy, error) {
				if p.QuoteID != "q-1" || p.UserID != "user-1" {
					t.Fatalf("unexpected policy linkage: %+v", p)
				}
				if !strings.HasPrefix(p.PolicyNumber, "POL") {
					t.Fatalf("unexpected policy number %q", p.PolicyNumber)
				}
				if p.Premium != 0 || p.Status != entities.PolicyStatusActive {
					t.Fatalf("unexpected policy defaults: %+v", p)
				}
				wantTo := p.ValidFrom.AddDate(1, 0, 0)
				if !p.ValidTo.Equal(wantTo) {
					t.Fatalf("expected one-year validity, got %s -> %s", p.ValidFrom, p.ValidTo)
				}
				if time.Since(p.ValidFrom) > time.Minute {
					t.Fatalf("validFrom not recent: %s", p.ValidFrom)
				}
				return p, nil
			},
		)

		policy, err := uc.Approve(context.Background(), "q-1", admin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.ID == "" {
			t.Fatalf("expected policy id")
		}
	})

	t.Run("concurrent approvals issue exactly one policy", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		pending := entities.Quote{ID: "q-1", UserID: "user-1", Status: entities.QuoteStatusPending}

		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil).Times(2)

		var wins int32
		m.repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPending, entities.QuoteStatusApproved, gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, _, to entities.QuoteStatus, _ entities.QuotePatch) (entities.Quote, error) {
				if atomic.AddInt32(&wins, 1) == 1 {
					return entities.Quote{ID: id, UserID: "user-1", Status: to}, nil
				}
				// Conditional check failed: someone else got there first.
				return entities.Quote{}, nil
			},
		).Times(2)
		m.policies.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Policy) (entities.Policy, error) { return p, nil },
		).Times(1)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = uc.Approve(context.Background(), "q-1", admin)
			}(i)
		}
		wg.Wait()

		var ok, stateErr int
		for _, err := range results {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrInvalidTransition):
				stateErr++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if ok != 1 || stateErr != 1 {
			t.Fatalf("expected exactly one winner, got ok=%d stateErr=%d", ok, stateErr)
		}
	})
}

func TestQuoteUseCase_Reject(t *testing.T) {
	admin := entities.Actor{ID: "adm-1", Role: entities.RoleAdmin}

	t.Run("empty reason", func(t *testing.T) {
		uc, _ := newQuoteUseCaseForTest(t)
		_, err := uc.Reject(context.Background(), "q-1", admin, "   ")
		if !errors.Is(err, ErrEmptyRejectionReason) {
			t.Fatalf("expected ErrEmptyRejectionReason, got %v", err)
		}
	})

	t.Run("not admin", func(t *testing.T) {
		uc, _ := newQuoteUseCaseForTest(t)
		_, err := uc.Reject(context.Background(), "q-1", entities.Actor{Role: entities.RoleAssociate}, "risco alto")
		if !errors.Is(err, ErrNotAdmin) {
			t.Fatalf("expected ErrNotAdmin, got %v", err)
		}
	})

	t.Run("already decided", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusRejected}, nil)
		_, err := uc.Reject(context.Background(), "q-1", admin, "risco alto")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("success stores reason", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)
		m.repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPending, entities.QuoteStatusRejected, gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, _, to entities.QuoteStatus, patch entities.QuotePatch) (entities.Quote, error) {
				if patch.RejectionReason == nil || *patch.RejectionReason != "risco alto" {
					t.Fatalf("expected rejection reason in patch, got %+v", patch)
				}
				return entities.Quote{ID: id, Status: to, RejectionReason: *patch.RejectionReason}, nil
			},
		)

		q, err := uc.Reject(context.Background(), "q-1", admin, " risco alto ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.RejectionReason != "risco alto" {
			t.Fatalf("expected trimmed reason, got %q", q.RejectionReason)
		}
	})
}

func TestQuoteUseCase_ListPending(t *testing.T) {
	t.Run("not admin", func(t *testing.T) {
		uc, _ := newQuoteUseCaseForTest(t)
		_, err := uc.ListPending(context.Background(), entities.Actor{Role: entities.RoleAssociate})
		if !errors.Is(err, ErrNotAdmin) {
			t.Fatalf("expected ErrNotAdmin, got %v", err)
		}
	})

	t.Run("admin reads pending", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().ListPending(gomock.Any()).Return([]entities.Quote{{ID: "q-2"}, {ID: "q-1"}}, nil)
		quotes, err := uc.ListPending(context.Background(), entities.Actor{ID: "adm-1", Role: entities.RoleAdmin})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(quotes) != 2 || quotes[0].ID != "q-2" {
			t.Fatalf("unexpected result: %+v", quotes)
		}
	})
}

func TestQuoteUseCase_GetByID(t *testing.T) {
	t.Run("owned by someone else reads as not found", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", UserID: "other"}, nil)
		_, err := uc.GetByID(context.Background(), "q-1", "user-1")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, m := newQuoteUseCaseForTest(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", UserID: "user-1"}, nil)
		q, err := uc.GetByID(context.Background(), "q-1", "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.ID != "q-1" {
			t.Fatalf("unexpected quote: %+v", q)
		}
	})
}
