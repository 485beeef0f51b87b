package handlers

import (
	"errors"
	"net/http"

	response "seguro_imovel/internal/adapter/http/dto/response"
	"seguro_imovel/internal/adapter/http/middleware"
	"seguro_imovel/internal/usecase"
	"seguro_imovel/pkg"

	"github.com/gin-gonic/gin"
)

// PolicyHandler handles HTTP reads for issued policies. Policies are created
// by quote approval, never directly through this handler.

type PolicyHandler struct {
	usecase usecase.IPolicyUseCase
}

func NewPolicyHandler(uc usecase.IPolicyUseCase) *PolicyHandler {
	return &PolicyHandler{usecase: uc}
}

// GetPolicy godoc
// @Summary      Get a policy by id
// @Tags         policies
// @Produce      json
// @Param        id   path      string  true  "Policy ID"
// @Success      200  {object}  response.PolicyResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /policies/{id} [get]
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	policy, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		appErr := mapPolicyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPolicy(policy))
}

// ListPolicies godoc
// @Summary      List the caller's policies
// @Tags         policies
// @Produce      json
// @Success      200  {array}  response.PolicyResponse
// @Router       /policies [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	policies, err := h.usecase.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		appErr := mapPolicyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPolicies(policies))
}

func mapPolicyError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPolicyID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPolicyNotFound):
		return pkg.NewDomainErrorSimple("POLICY_NOT_FOUND", "Policy not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
