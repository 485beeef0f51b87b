package handlers

import (
	"errors"
	"net/http"

	request "seguro_imovel/internal/adapter/http/dto/request"
	response "seguro_imovel/internal/adapter/http/dto/response"
	"seguro_imovel/internal/adapter/http/middleware"
	"seguro_imovel/internal/usecase"
	"seguro_imovel/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPropertyPayload = pkg.NewDomainErrorSimple("INVALID_PROPERTY_INPUT", "Invalid property payload", http.StatusBadRequest)

// PropertyHandler handles HTTP requests for insurable properties.

type PropertyHandler struct {
	usecase usecase.IPropertyUseCase
}

func NewPropertyHandler(uc usecase.IPropertyUseCase) *PropertyHandler {
	return &PropertyHandler{usecase: uc}
}

// CreateProperty godoc
// @Summary      Register an insurable property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        payload  body      request.PropertyRequest  true  "Property"
// @Success      201      {object}  response.PropertyResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var payload request.PropertyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPropertyPayload.HTTPStatus, errInvalidPropertyPayload.ToHTTPError())
		return
	}

	actor := middleware.ActorFrom(c)
	property, err := h.usecase.Create(c.Request.Context(), payload.ToProperty(), actor.ID)
	if err != nil {
		appErr := mapPropertyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromProperty(property))
}

// GetProperty godoc
// @Summary      Get a property by id
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  response.PropertyResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	property, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		appErr := mapPropertyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProperty(property))
}

// ListProperties godoc
// @Summary      List the caller's properties
// @Tags         properties
// @Produce      json
// @Success      200  {array}  response.PropertyResponse
// @Router       /properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	properties, err := h.usecase.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		appErr := mapPropertyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProperties(properties))
}

// UpdateProperty godoc
// @Summary      Update a property (risk category is re-derived)
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Property ID"
// @Param        payload  body      request.PropertyRequest  true  "Property"
// @Success      200      {object}  response.PropertyResponse
// @Failure      404      {object}  pkg.HTTPError
// @Router       /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	var payload request.PropertyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPropertyPayload.HTTPStatus, errInvalidPropertyPayload.ToHTTPError())
		return
	}

	actor := middleware.ActorFrom(c)
	property, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToProperty(), actor.ID)
	if err != nil {
		appErr := mapPropertyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProperty(property))
}

// DeleteProperty godoc
// @Summary      Delete a property
// @Tags         properties
// @Param        id  path  string  true  "Property ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id"), actor.ID); err != nil {
		appErr := mapPropertyError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapPropertyError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPropertyID),
		errors.Is(err, usecase.ErrInvalidOwnerDocument),
		errors.Is(err, usecase.ErrMissingAddress):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPropertyNotFound):
		return pkg.NewDomainErrorSimple("PROPERTY_NOT_FOUND", "Property not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
