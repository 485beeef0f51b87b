package handlers

import (
	"net/http"
	"strconv"

	response "seguro_imovel/internal/adapter/http/dto/response"
	"seguro_imovel/internal/domain/insurer"
	"seguro_imovel/pkg"

	"github.com/gin-gonic/gin"
)

// DomainHandler serves the insurer domain tables (payment methods,
// coverages). The tables are static; see internal/domain/insurer.

type DomainHandler struct{}

func NewDomainHandler() *DomainHandler {
	return &DomainHandler{}
}

// GetDomain godoc
// @Summary      List the entries of an insurer domain table
// @Tags         domains
// @Produce      json
// @Param        code  path      int  true  "Domain table code (81=payment methods, 9999=coverages)"
// @Success      200   {object}  response.DomainResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /domains/{code} [get]
func (h *DomainHandler) GetDomain(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_DOMAIN_CODE", "Domain code must be numeric", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDomainTable(code, insurer.DomainTable(code)))
}
