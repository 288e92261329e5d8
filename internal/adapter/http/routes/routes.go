package routes

import (
	"log"
	"os"
	"strconv"

	_ "gestion_comercial/docs" // This will be auto-generated
	"gestion_comercial/internal/adapter/http/handlers"
	"gestion_comercial/internal/adapter/http/middleware"
	"gestion_comercial/internal/infrastructure/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := defaultPort
	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		port = v
	}
	err := router.Run(":" + strconv.Itoa(port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	deps := buildLifecycle()
	quotationHandler := handlers.NewQuotationHandler(deps.useCase, deps.location)

	tokens, err := auth.NewTokenServiceFromEnv()
	if err != nil {
		log.Printf("JWT authentication not configured: %v", err)
	}

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Rotas autenticadas
	var validator middleware.TokenValidator
	if tokens != nil {
		validator = tokens
	}
	secured := v1.Group("", middleware.RequireActor(validator))
	addQuotationRoutes(secured, quotationHandler)
}

func setMiddlewares() {
	router.Use(cors.New(corsConfig()))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
