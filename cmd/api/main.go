package main

import (
	_ "fx_payments/docs"
	"fx_payments/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Cross-Currency Payment Service API
// @version         1.0
// @description     Accepts cross-currency payments, quotes them with an external FX service and records the outcome.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
