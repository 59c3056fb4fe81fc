package routes

import (
	"log"
	"os"
	"strconv"

	_ "checkout_service/docs" // This will be auto-generated
	"checkout_service/internal/adapter/http/handlers"
	repository2 "checkout_service/internal/adapter/persistence/repository"
	"checkout_service/internal/infrastructure/database"
	"checkout_service/internal/infrastructure/payments"
	"checkout_service/internal/usecase"
	"checkout_service/internal/usecase/interfaces"

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

	cartRepo := repository2.NewCartDynamoRepository(ddb)
	orderRepo := repository2.NewOrderDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	stripeGateway, err := payments.NewStripeGateway(payments.Config{
		APIKey:        os.Getenv("STRIPE_API_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	})
	if err != nil {
		log.Printf("Stripe gateway not configured: %v", err)
	} else {
		paymentGateway = stripeGateway
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(cartRepo, orderRepo, paymentGateway)
	directPaymentUseCase := usecase.NewDirectPaymentUseCase(cartRepo, paymentGateway)
	webhookUseCase := usecase.NewWebhookFallbackUseCase(orderRepo, paymentGateway)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	directPaymentHandler := handlers.NewDirectPaymentHandler(directPaymentUseCase)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	addCheckoutRoutes(router, checkoutHandler, directPaymentHandler, webhookHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
