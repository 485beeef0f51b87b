package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seguro_imovel/internal/adapter/http/handlers/mocks"
	"seguro_imovel/internal/adapter/http/middleware"
	"seguro_imovel/internal/domain/entities"
	insurerdomain "seguro_imovel/internal/domain/insurer"
	"seguro_imovel/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newQuoteRouter(h *QuoteHandler) *gin.Engine {
	r := gin.New()
	authed := r.Group("/v1", middleware.RequireIdentity())
	authed.POST("/quotes", h.CreateQuote)
	authed.GET("/quotes", h.ListQuotes)
	authed.GET("/quotes/pending", h.ListPendingQuotes)
	authed.GET("/quotes/:id", h.GetQuote)
	authed.PATCH("/quotes/:id/approve", h.ApproveQuote)
	authed.PATCH("/quotes/:id/reject", h.RejectQuote)
	authed.PATCH("/quotes/:id/payment", h.ConfirmPayment)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func asUser(id string) map[string]string {
	return map[string]string{middleware.HeaderUserID: id}
}

func asAdmin(id string) map[string]string {
	return map[string]string{
		middleware.HeaderUserID:   id,
		middleware.HeaderUserRole: "admin",
	}
}

const createQuoteBody = `{
	"propertyId":"prop-1",
	"clientName":"Maria Silva",
	"cpfCnpj":"11144477735",
	"initialDateInsurance":"2026-09-01",
	"listCoverage":[{"code":"0002","sumInsured":50000}],
	"paymentData":{"paymentMode":2,"paymentOption":"3"}
}`

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		w := doJSON(r, http.MethodPost, "/v1/quotes", createQuoteBody, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		w := doJSON(r, http.MethodPost, "/v1/quotes", "{", asUser("user-1"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("partnerData is never forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		body := `{
			"propertyId":"prop-1",
			"initialDateInsurance":"2026-09-01",
			"listCoverage":[{"code":"0002","sumInsured":50000}],
			"partnerData":{"partnerCode":"spoofed"}
		}`

		uc.EXPECT().
			Create(gomock.Any(), gomock.Any(), "user-1").
			DoAndReturn(func(_ any, req entities.QuoteRequest, _ string) (entities.Quote, error) {
				raw, err := json.Marshal(req)
				if err != nil {
					t.Fatalf("marshal: %v", err)
				}
				if bytes.Contains(raw, []byte("spoofed")) {
					t.Fatalf("partnerData leaked into the internal request: %s", raw)
				}
				return entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil
			})

		w := doJSON(r, http.MethodPost, "/v1/quotes", body, asUser("user-1"))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("insurer failure maps to bad gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			Create(gomock.Any(), gomock.Any(), "user-1").
			Return(entities.Quote{}, &insurerdomain.UpstreamError{Status: 500, Body: "boom"})

		w := doJSON(r, http.MethodPost, "/v1/quotes", createQuoteBody, asUser("user-1"))
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("payer document mismatch maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			Create(gomock.Any(), gomock.Any(), "user-1").
			Return(entities.Quote{}, usecase.ErrPayerDocumentMismatch)

		w := doJSON(r, http.MethodPost, "/v1/quotes", createQuoteBody, asUser("user-1"))
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		premium := 1890.55
		now := time.Now().UTC()
		uc.EXPECT().
			Create(gomock.Any(), gomock.Any(), "user-1").
			Return(entities.Quote{
				ID:              "q-1",
				PropertyID:      "prop-1",
				Status:          entities.QuoteStatusPending,
				ExternalQuoteID: "123456",
				PremiumTotal:    &premium,
				CreatedAt:       now,
				UpdatedAt:       now,
			}, nil)

		w := doJSON(r, http.MethodPost, "/v1/quotes", createQuoteBody, asUser("user-1"))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["id"] != "q-1" || got["status"] != "pending" {
			t.Fatalf("unexpected body: %v", got)
		}
	})
}

func TestQuoteHandler_Decisions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve forbidden for associate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			Approve(gomock.Any(), "q-1", entities.Actor{ID: "user-1", Role: entities.RoleAssociate}).
			Return(entities.Policy{}, usecase.ErrNotAdmin)

		w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/approve", "", asUser("user-1"))
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("approve conflict on decided quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			Approve(gomock.Any(), "q-1", entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}).
			Return(entities.Policy{}, usecase.ErrInvalidTransition)

		w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/approve", "", asAdmin("admin-1"))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("approve returns the policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			Approve(gomock.Any(), "q-1", entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}).
			Return(entities.Policy{ID: "pol-1", QuoteID: "q-1", PolicyNumber: "POL123", Status: entities.PolicyStatusActive}, nil)

		w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/approve", "", asAdmin("admin-1"))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["policy_number"] != "POL123" {
			t.Fatalf("unexpected body: %v", got)
		}
	})

	t.Run("reject requires reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/reject", `{}`, asAdmin("admin-1"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("reject success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			Reject(gomock.Any(), "q-1", entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}, "risco alto demais").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusRejected, RejectionReason: "risco alto demais"}, nil)

		w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/reject", `{"reason":"risco alto demais"}`, asAdmin("admin-1"))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("payment confirmation conflict outside payment-options", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			ConfirmPayment(gomock.Any(), "q-1", "user-1", entities.PaymentDataRequest{PaymentMode: 2, PaymentOption: "3"}).
			Return(entities.Quote{}, usecase.ErrInvalidTransition)

		w := doJSON(r, http.MethodPatch, "/v1/quotes/q-1/payment", `{"paymentMode":2,"paymentOption":"3"}`, asUser("user-1"))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_Reads(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "q-404", "user-1").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := doJSON(r, http.MethodGet, "/v1/quotes/q-404", "", asUser("user-1"))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list returns the caller's quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]entities.Quote{
			{ID: "q-1", Status: entities.QuoteStatusPending},
			{ID: "q-2", Status: entities.QuoteStatusApproved},
		}, nil)

		w := doJSON(r, http.MethodGet, "/v1/quotes", "", asUser("user-1"))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var got []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 quotes, got %d", len(got))
		}
	})

	t.Run("pending queue forbidden for associate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().
			ListPending(gomock.Any(), entities.Actor{ID: "user-1", Role: entities.RoleAssociate}).
			Return(nil, usecase.ErrNotAdmin)

		w := doJSON(r, http.MethodGet, "/v1/quotes/pending", "", asUser("user-1"))
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("unexpected error maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		r := newQuoteRouter(NewQuoteHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "q-1", "user-1").Return(entities.Quote{}, errors.New("dynamo down"))

		w := doJSON(r, http.MethodGet, "/v1/quotes/q-1", "", asUser("user-1"))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
