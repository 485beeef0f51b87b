package handlers

import (
	"errors"
	"log"
	"net/http"

	request "seguro_imovel/internal/adapter/http/dto/request"
	response "seguro_imovel/internal/adapter/http/dto/response"
	"seguro_imovel/internal/adapter/http/middleware"
	insurerdomain "seguro_imovel/internal/domain/insurer"
	"seguro_imovel/internal/usecase"
	"seguro_imovel/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for the quote lifecycle.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Create an insurance quote
// @Description  Quotes the property with the insurer and persists the result
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateQuoteRequest  true  "Quote request"
// @Success      201      {object}  response.QuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	if payload.HasPartnerData() {
		// Deprecated block; partner identity is server-side configuration.
		log.Printf("[quote][handler] ignoring partnerData sent by client user_id=%s", middleware.ActorFrom(c).ID)
	}

	actor := middleware.ActorFrom(c)
	quote, err := h.usecase.Create(c.Request.Context(), payload.ToQuoteRequest(), actor.ID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// GetQuote godoc
// @Summary      Get a quote by id
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ListQuotes godoc
// @Summary      List the caller's quotes
// @Tags         quotes
// @Produce      json
// @Success      200  {array}  response.QuoteResponse
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	quotes, err := h.usecase.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// ListPendingQuotes godoc
// @Summary      List quotes awaiting decision (admin)
// @Tags         quotes
// @Produce      json
// @Success      200  {array}   response.QuoteResponse
// @Failure      403  {object}  pkg.HTTPError
// @Router       /quotes/pending [get]
func (h *QuoteHandler) ListPendingQuotes(c *gin.Context) {
	quotes, err := h.usecase.ListPending(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// ApproveQuote godoc
// @Summary      Approve a pending quote and issue the policy (admin)
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.PolicyResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/approve [patch]
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	policy, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPolicy(policy))
}

// RejectQuote godoc
// @Summary      Reject a pending quote with a reason (admin)
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Quote ID"
// @Param        payload  body      request.RejectQuoteRequest true  "Rejection reason"
// @Success      200      {object}  response.QuoteResponse
// @Failure      403      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quotes/{id}/reject [patch]
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	var payload request.RejectQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), middleware.ActorFrom(c), payload.ResolveReason())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ConfirmPayment godoc
// @Summary      Confirm a payment selection and re-price the quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Quote ID"
// @Param        payload  body      request.ConfirmPaymentRequest true  "Payment selection"
// @Success      200      {object}  response.QuoteResponse
// @Failure      409      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /quotes/{id}/payment [patch]
func (h *QuoteHandler) ConfirmPayment(c *gin.Context) {
	var payload request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	actor := middleware.ActorFrom(c)
	quote, err := h.usecase.ConfirmPayment(c.Request.Context(), c.Param("id"), actor.ID, payload.ToPaymentData())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func mapQuoteError(err error) *pkg.AppError {
	var authErr *insurerdomain.AuthError
	var upErr *insurerdomain.UpstreamError

	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrMissingInsuranceDate),
		errors.Is(err, usecase.ErrEmptyRejectionReason):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingCoverage),
		errors.Is(err, usecase.ErrInvalidSumInsured),
		errors.Is(err, usecase.ErrPayerDocumentMismatch):
		return pkg.NewDomainErrorSimple("UNPROCESSABLE_QUOTE", "Quote request cannot be processed", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteNotFound), errors.Is(err, usecase.ErrPropertyNotOwned):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotAdmin):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Administrator role required", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Quote status does not allow this operation", http.StatusConflict)
	case errors.As(err, &authErr), errors.As(err, &upErr):
		return pkg.NewDomainError("INSURER_UNAVAILABLE", "Insurer integration failed", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
