package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuoteID        = errors.New("invalid quote id")
	ErrQuoteNotFound         = errors.New("quote not found")
	ErrPropertyNotOwned      = errors.New("property not found or not owned by the associate")
	ErrPayerDocumentMismatch = errors.New("payer document does not match the property owner document")
	ErrMissingCoverage       = errors.New("at least one coverage is required")
	ErrInvalidSumInsured     = errors.New("sum insured must be positive")
	ErrMissingInsuranceDate  = errors.New("initial insurance date is required")
	ErrNotAdmin              = errors.New("actor is not an administrator")
	ErrInvalidTransition     = errors.New("quote status does not allow this operation")
	ErrEmptyRejectionReason  = errors.New("rejection reason is required")
)

// IQuoteUseCase exposes the quote lifecycle operations.
//
// Lifecycle:
//   - Create            => quote the property with the insurer and persist
//   - ConfirmPayment    => payment-options -> pending (re-quote with selection)
//   - Approve           => pending -> approved, issues the policy
//   - Reject            => pending -> rejected (reason required)

type IQuoteUseCase interface {
	Create(ctx context.Context, req entities.QuoteRequest, ownerID string) (entities.Quote, error)
	GetByID(ctx context.Context, id, ownerID string) (entities.Quote, error)
	ListByUser(ctx context.Context, ownerID string) ([]entities.Quote, error)
	ListPending(ctx context.Context, actor entities.Actor) ([]entities.Quote, error)
	Approve(ctx context.Context, id string, actor entities.Actor) (entities.Policy, error)
	Reject(ctx context.Context, id string, actor entities.Actor, reason string) (entities.Quote, error)
	ConfirmPayment(ctx context.Context, id, ownerID string, selection entities.PaymentDataRequest) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo         interfaces.IQuoteRepository
	policyRepo   interfaces.IPolicyRepository
	propertyRepo interfaces.IPropertyRepository
	gateway      interfaces.IInsurerGateway
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	policyRepo interfaces.IPolicyRepository,
	propertyRepo interfaces.IPropertyRepository,
	gateway interfaces.IInsurerGateway,
) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, policyRepo: policyRepo, propertyRepo: propertyRepo, gateway: gateway}
}

// Create quotes the property with the insurer and persists the outcome.
// Nothing is persisted when any step fails.
func (u *QuoteUseCase) Create(ctx context.Context, req entities.QuoteRequest, ownerID string) (entities.Quote, error) {
	log.Printf("[quote][usecase] create start property_id=%s owner_id=%s", req.PropertyID, ownerID)

	if err := validateQuoteRequest(req); err != nil {
		return entities.Quote{}, err
	}

	prop, err := u.loadOwnedProperty(ctx, req.PropertyID, ownerID)
	if err != nil {
		return entities.Quote{}, err
	}

	if err := checkPayerDocument(req.PaymentData.PayerDocument, prop.OwnerDocument); err != nil {
		return entities.Quote{}, err
	}

	riskAddr, riskData := buildAuditBlocks(prop)
	req.RiskDataAddress = &riskAddr
	req.RiskCategoryData = &riskData

	payload := buildQuotationPayload(req, prop)

	result, err := u.gateway.CreateQuote(ctx, payload)
	if err != nil {
		log.Printf("[quote][usecase] insurer call failed property_id=%s err=%v", req.PropertyID, err)
		return entities.Quote{}, err
	}

	// A payment-method listing (requested explicitly via paymentMode 0, or
	// recovered by the transport fallback) parks the quote in
	// payment-options until the associate picks one.
	status := entities.QuoteStatusPending
	if result.HasPaymentOptions() || req.PaymentData.PaymentMode == 0 {
		status = entities.QuoteStatusPaymentOptions
	}

	requestBlob, err := json.Marshal(req)
	if err != nil {
		return entities.Quote{}, err
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:              uuid.NewString(),
		UserID:          ownerID,
		PropertyID:      prop.ID,
		Status:          status,
		ExternalQuoteID: result.ExternalQuoteID,
		PremiumTotal:    result.PremiumTotal,
		Request:         requestBlob,
		PaymentOptions:  result.PaymentOptions,
		RawResponse:     result.Raw,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		log.Printf("[quote][usecase] create persist failed quote_id=%s err=%v", q.ID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] create success quote_id=%s status=%s external_quote_id=%s", created.ID, created.Status, created.ExternalQuoteID)
	return created, nil
}

// ConfirmPayment merges the associate's payment selection into the stored
// request, re-quotes with the insurer and transitions the quote back to
// pending. Only legal from payment-options; no insurer call is made from any
// other state.
func (u *QuoteUseCase) ConfirmPayment(ctx context.Context, id, ownerID string, selection entities.PaymentDataRequest) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	log.Printf("[quote][usecase] confirm-payment start quote_id=%s owner_id=%s", id, ownerID)

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" || (ownerID != "" && q.UserID != ownerID) {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusPaymentOptions {
		return entities.Quote{}, ErrInvalidTransition
	}

	var req entities.QuoteRequest
	if err := json.Unmarshal(q.Request, &req); err != nil {
		return entities.Quote{}, err
	}

	req.PaymentData.PaymentMode = selection.PaymentMode
	req.PaymentData.PaymentOption = selection.PaymentOption
	if selection.PayerDocument != "" {
		req.PaymentData.PayerDocument = selection.PayerDocument
	}

	prop, err := u.loadOwnedProperty(ctx, q.PropertyID, ownerID)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := checkPayerDocument(req.PaymentData.PayerDocument, prop.OwnerDocument); err != nil {
		return entities.Quote{}, err
	}

	payload := buildQuotationPayload(req, prop)

	result, err := u.gateway.CreateQuote(ctx, payload)
	if err != nil {
		log.Printf("[quote][usecase] confirm-payment insurer call failed quote_id=%s err=%v", id, err)
		return entities.Quote{}, err
	}

	requestBlob, err := json.Marshal(req)
	if err != nil {
		return entities.Quote{}, err
	}

	patch := entities.QuotePatch{
		ExternalQuoteID: &result.ExternalQuoteID,
		PremiumTotal:    result.PremiumTotal,
		Request:         requestBlob,
		PaymentOptions:  result.PaymentOptions,
		RawResponse:     result.Raw,
	}

	updated, err := u.repo.UpdateStatus(ctx, id, entities.QuoteStatusPaymentOptions, entities.QuoteStatusPending, patch)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		// The status changed between the read and the conditional write.
		return entities.Quote{}, ErrInvalidTransition
	}
	log.Printf("[quote][usecase] confirm-payment success quote_id=%s external_quote_id=%s", updated.ID, updated.ExternalQuoteID)
	return updated, nil
}

// Approve transitions a pending quote to approved and issues the policy.
// Admin only. The conditional status write guarantees a single winner under
// concurrent approvals, so exactly one policy is created per quote.
func (u *QuoteUseCase) Approve(ctx context.Context, id string, actor entities.Actor) (entities.Policy, error) {
	q, err := u.loadForDecision(ctx, id, actor)
	if err != nil {
		return entities.Policy{}, err
	}
	log.Printf("[quote][usecase] approve start quote_id=%s actor_id=%s", q.ID, actor.ID)

	updated, err := u.repo.UpdateStatus(ctx, q.ID, entities.QuoteStatusPending, entities.QuoteStatusApproved, entities.QuotePatch{})
	if err != nil {
		return entities.Policy{}, err
	}
	if updated.ID == "" {
		return entities.Policy{}, ErrInvalidTransition
	}

	now := time.Now().UTC()
	policy := entities.Policy{
		ID:           uuid.NewString(),
		QuoteID:      updated.ID,
		UserID:       updated.UserID,
		PolicyNumber: "POL" + strconv.FormatInt(now.UnixMilli(), 10),
		ValidFrom:    now,
		ValidTo:      now.AddDate(1, 0, 0),
		Premium:      0, // finalized downstream by policy administration
		Status:       entities.PolicyStatusActive,
		CreatedAt:    now,
	}

	created, err := u.policyRepo.Create(ctx, policy)
	if err != nil {
		log.Printf("[quote][usecase] policy issuance failed quote_id=%s err=%v", updated.ID, err)
		return entities.Policy{}, err
	}
	log.Printf("[quote][usecase] approve success quote_id=%s policy_number=%s", updated.ID, created.PolicyNumber)
	return created, nil
}

// Reject transitions a pending quote to rejected, storing the reason.
// Admin only; a non-empty reason is required.
func (u *QuoteUseCase) Reject(ctx context.Context, id string, actor entities.Actor, reason string) (entities.Quote, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Quote{}, ErrEmptyRejectionReason
	}

	q, err := u.loadForDecision(ctx, id, actor)
	if err != nil {
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] reject start quote_id=%s actor_id=%s", q.ID, actor.ID)

	patch := entities.QuotePatch{RejectionReason: &reason}
	updated, err := u.repo.UpdateStatus(ctx, q.ID, entities.QuoteStatusPending, entities.QuoteStatusRejected, patch)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrInvalidTransition
	}
	log.Printf("[quote][usecase] reject success quote_id=%s", updated.ID)
	return updated, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id, ownerID string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" || (ownerID != "" && q.UserID != ownerID) {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) ListByUser(ctx context.Context, ownerID string) ([]entities.Quote, error) {
	return u.repo.ListByUserID(ctx, ownerID)
}

// ListPending returns all pending quotes, most recent first. Admin only.
func (u *QuoteUseCase) ListPending(ctx context.Context, actor entities.Actor) ([]entities.Quote, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return u.repo.ListPending(ctx)
}

// loadForDecision runs the shared approve/reject preconditions: admin role,
// quote existence and the pending source state. The state is re-checked by
// the conditional write afterwards; this early check avoids mutating
// anything for an already-decided quote.
func (u *QuoteUseCase) loadForDecision(ctx context.Context, id string, actor entities.Actor) (entities.Quote, error) {
	if !actor.IsAdmin() {
		return entities.Quote{}, ErrNotAdmin
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusPending {
		return entities.Quote{}, ErrInvalidTransition
	}
	return q, nil
}

func (u *QuoteUseCase) loadOwnedProperty(ctx context.Context, propertyID, ownerID string) (entities.Property, error) {
	prop, err := u.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return entities.Property{}, err
	}
	if prop.ID == "" || (ownerID != "" && prop.UserID != ownerID) {
		return entities.Property{}, ErrPropertyNotOwned
	}
	return prop, nil
}

func validateQuoteRequest(req entities.QuoteRequest) error {
	if strings.TrimSpace(req.PropertyID) == "" {
		return ErrPropertyNotOwned
	}
	if strings.TrimSpace(req.InitialDateInsurance) == "" {
		return ErrMissingInsuranceDate
	}
	if len(req.ListCoverage) == 0 {
		return ErrMissingCoverage
	}
	for _, c := range req.ListCoverage {
		if c.SumInsured <= 0 {
			return ErrInvalidSumInsured
		}
	}
	return nil
}

func checkPayerDocument(payerDocument, ownerDocument string) error {
	if strings.TrimSpace(payerDocument) == "" {
		return nil
	}
	if keepDigits(payerDocument) != keepDigits(ownerDocument) {
		return ErrPayerDocumentMismatch
	}
	return nil
}
