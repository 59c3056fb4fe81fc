package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"checkout_service/internal/adapter/http/dto/request"
	response "checkout_service/internal/adapter/http/dto/response"
	"checkout_service/internal/usecase"
	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles HTTP requests for cart completion and payment
// confirmation.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// Complete turns a completed cart into an order. The storefront checkout
// library treats any non-200 as a hard failure it cannot render, so failures
// are reported in-band with status 200 and type "cart".
func (h *CheckoutHandler) Complete(c *gin.Context) {
	cartID := c.Param("id")
	log.Printf("[checkout][handler] complete start cart_id=%s", cartID)

	result, err := h.usecase.Complete(c.Request.Context(), cartID)
	if err != nil {
		log.Printf("[checkout][handler] complete failed cart_id=%s err=%v", cartID, err)
		c.JSON(http.StatusOK, response.CompleteResponse{
			Type:   "cart",
			CartID: cartID,
			Error:  "Failed to complete cart",
		})
		return
	}
	log.Printf("[checkout][handler] complete done cart_id=%s type=%s", cartID, result.Type)

	c.JSON(http.StatusOK, response.FromCompleteResult(result))
}

// Confirm verifies a payment intent with the gateway and marks the matching
// order captured. Called by the storefront after Stripe.js confirmation.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	setCORSHeaders(c)

	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[checkout][handler] confirm invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] confirm start intent_id=%s order_id=%s", req.PaymentIntentID, req.OrderID)

	result, err := h.usecase.Confirm(c.Request.Context(), req.PaymentIntentID, req.OrderID)
	if err != nil {
		log.Printf("[checkout][handler] confirm failed intent_id=%s err=%v", req.PaymentIntentID, err)
		appErr := mapConfirmError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] confirm success order_id=%s already_processed=%v", result.OrderID, result.AlreadyProcessed)

	c.JSON(http.StatusOK, result)
}

// ConfirmStatus is a reachability probe for the confirmation route so the
// storefront can distinguish "endpoint missing" from "confirmation failed".
func (h *CheckoutHandler) ConfirmStatus(c *gin.Context) {
	setCORSHeaders(c)
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"endpoint":  "confirm-stripe",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func mapConfirmError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidIntentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "payment_intent_id is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotComplete):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_COMPLETE", "Payment has not completed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderIDUnresolved):
		return pkg.NewDomainErrorSimple("ORDER_ID_UNRESOLVED", "No order_id found in request or payment metadata", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrIntentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment intent not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
