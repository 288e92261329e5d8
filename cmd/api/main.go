package main

import (
	_ "time/tzdata"

	_ "gestion_comercial/docs"
	"gestion_comercial/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Gestión Comercial API
// @version         1.0
// @description     Quotation lifecycle service: quotations, orders and remissions backed by DynamoDB.

// @contact.name   Equipo Comercial

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
