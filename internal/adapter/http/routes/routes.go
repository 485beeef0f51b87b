package routes

import (
	"log"
	"strconv"

	_ "seguro_imovel/docs" // This will be auto-generated
	"seguro_imovel/internal/adapter/http/handlers"
	"seguro_imovel/internal/adapter/http/middleware"
	repository2 "seguro_imovel/internal/adapter/persistence/repository"
	"seguro_imovel/internal/infrastructure/database"
	"seguro_imovel/internal/infrastructure/insurer"
	"seguro_imovel/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	policyRepo := repository2.NewPolicyDynamoRepository(ddb)
	propertyRepo := repository2.NewPropertyDynamoRepository(ddb)

	insurerCfg, err := insurer.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load insurer configuration: %v", err)
	}
	gateway, err := insurer.NewAllianzGateway(insurerCfg)
	if err != nil {
		log.Fatalf("Failed to create insurer gateway: %v", err)
	}

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, policyRepo, propertyRepo, gateway)
	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo)
	policyUseCase := usecase.NewPolicyUseCase(policyRepo)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	propertyHandler := handlers.NewPropertyHandler(propertyUseCase)
	policyHandler := handlers.NewPolicyHandler(policyUseCase)
	domainHandler := handlers.NewDomainHandler()

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Domain tables are reference data; no identity required.
	v1.GET("/domains/:code", domainHandler.GetDomain)

	authed := v1.Group("", middleware.RequireIdentity())
	addInsuranceRoutes(authed, quoteHandler, propertyHandler, policyHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
