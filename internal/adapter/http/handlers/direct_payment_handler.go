package handlers

import (
	"errors"
	"log"
	"net/http"

	"checkout_service/internal/adapter/http/dto/request"
	response "checkout_service/internal/adapter/http/dto/response"
	"checkout_service/internal/usecase"
	"checkout_service/pkg"

	"github.com/gin-gonic/gin"
)

// DirectPaymentHandler handles HTTP requests for the direct Stripe payment
// bypass.

type DirectPaymentHandler struct {
	usecase usecase.IDirectPaymentUseCase
}

func NewDirectPaymentHandler(uc usecase.IDirectPaymentUseCase) *DirectPaymentHandler {
	return &DirectPaymentHandler{usecase: uc}
}

// CreatePayment opens a payment intent for the cart without going through the
// payment session machinery. The client secret in the response is what
// Stripe.js needs to collect the card.
func (h *DirectPaymentHandler) CreatePayment(c *gin.Context) {
	setCORSHeaders(c)

	var req request.DirectPaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payment][handler] direct create invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "cart_id is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] direct create start cart_id=%s", req.CartID)

	result, err := h.usecase.CreatePayment(c.Request.Context(), usecase.DirectPaymentInput{
		CartID:          req.CartID,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress.ToEntity(),
		BillingAddress:  req.BillingAddress.ToEntity(),
	})
	if err != nil {
		log.Printf("[payment][handler] direct create failed cart_id=%s err=%v", req.CartID, err)
		appErr := mapDirectPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] direct create success cart_id=%s intent_id=%s", req.CartID, result.PaymentIntentID)

	c.JSON(http.StatusOK, response.FromDirectPayment(result))
}

func mapDirectPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCartID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "cart_id is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_CONFIGURED", "Stripe is not configured; set STRIPE_API_KEY", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("PAYMENT_CREATE_FAILED", "Failed to create payment", err, http.StatusInternalServerError)
	}
}
