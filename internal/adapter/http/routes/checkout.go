package routes

import (
	"checkout_service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCompleteCart    = "/store/carts/:id/complete"
	PathDirectPayment   = "/store/stripe-direct/create-payment"
	PathConfirmPayment  = "/store/payment/confirm-stripe"
	PathProcessPending  = "/store/process-pending-payments"
	PathWebhookFallback = "/stripe-webhook-fallback"
	PathWebhookSigned   = "/hooks/payment/stripe"
)

func addCheckoutRoutes(r *gin.Engine, checkoutHandler *handlers.CheckoutHandler, directPaymentHandler *handlers.DirectPaymentHandler, webhookHandler *handlers.WebhookHandler) {
	r.POST(PathCompleteCart, checkoutHandler.Complete)

	r.POST(PathDirectPayment, directPaymentHandler.CreatePayment)
	r.OPTIONS(PathDirectPayment, handlers.HandlePreflight)

	r.POST(PathConfirmPayment, checkoutHandler.Confirm)
	r.GET(PathConfirmPayment, checkoutHandler.ConfirmStatus)
	r.OPTIONS(PathConfirmPayment, handlers.HandlePreflight)

	r.GET(PathProcessPending, webhookHandler.ProcessPending)

	r.POST(PathWebhookFallback, webhookHandler.Fallback)
	r.POST(PathWebhookSigned, webhookHandler.Signed)
}
