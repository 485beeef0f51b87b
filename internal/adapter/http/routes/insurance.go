package routes

import (
	"seguro_imovel/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes     = "/quotes"
	PathProperties = "/properties"
	PathPolicies   = "/policies"
)

func addInsuranceRoutes(
	rg *gin.RouterGroup,
	quoteHandler *handlers.QuoteHandler,
	propertyHandler *handlers.PropertyHandler,
	policyHandler *handlers.PolicyHandler,
) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/pending", quoteHandler.ListPendingQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id/approve", quoteHandler.ApproveQuote)
		quotes.PATCH("/:id/reject", quoteHandler.RejectQuote)
		quotes.PATCH("/:id/payment", quoteHandler.ConfirmPayment)
	}

	properties := rg.Group(PathProperties)
	{
		properties.POST("", propertyHandler.CreateProperty)
		properties.GET("", propertyHandler.ListProperties)
		properties.GET("/:id", propertyHandler.GetProperty)
		properties.PUT("/:id", propertyHandler.UpdateProperty)
		properties.DELETE("/:id", propertyHandler.DeleteProperty)
	}

	policies := rg.Group(PathPolicies)
	{
		policies.GET("", policyHandler.ListPolicies)
		policies.GET("/:id", policyHandler.GetPolicy)
	}
}
