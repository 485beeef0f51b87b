package main

import (
	_ "seguro_imovel/docs"
	"seguro_imovel/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Property Insurance Quote API
// @version         1.0
// @description     Quotes residential properties with the partner insurer and manages the quote/policy lifecycle, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey GatewayIdentity
// @in header
// @name X-User-Id
// @description Caller identity injected by the auth gateway.

func main() {
	routes.Run()
}
