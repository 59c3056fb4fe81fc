package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"checkout_service/internal/adapter/http/dto/request"
	response "checkout_service/internal/adapter/http/dto/response"
	"checkout_service/internal/usecase"
	"checkout_service/internal/usecase/interfaces"
	"checkout_service/pkg"

	"github.com/gin-gonic/gin"
)

// EventIDHeader carries the gateway event id when the hosting layer strips
// the webhook body before it reaches us.
const EventIDHeader = "x-stripe-event-id"

// WebhookHandler handles gateway webhook deliveries and the recovery routes
// that replay events when delivery failed.

type WebhookHandler struct {
	usecase usecase.IWebhookFallbackUseCase
}

func NewWebhookHandler(uc usecase.IWebhookFallbackUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// Fallback replays a gateway event by id. The id is recovered from the body,
// the custom header, or the query string; with no id at all the gateway's
// recent event log is scanned instead.
func (h *WebhookHandler) Fallback(c *gin.Context) {
	var bodyID string
	raw, err := c.GetRawData()
	if err == nil && len(raw) > 0 {
		var body request.WebhookFallbackRequest
		if jsonErr := json.Unmarshal(raw, &body); jsonErr != nil {
			log.Printf("[webhook][handler] fallback body not json, ignoring err=%v", jsonErr)
		} else {
			bodyID = body.ID
		}
	}

	eventID := request.ResolveEventID(bodyID, c.GetHeader(EventIDHeader), c.Query("event_id"))
	log.Printf("[webhook][handler] fallback start event_id=%q", eventID)

	result, err := h.usecase.ProcessEvent(c.Request.Context(), eventID)
	if err != nil {
		log.Printf("[webhook][handler] fallback failed event_id=%q err=%v", eventID, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] fallback done event_id=%q outcome=%s order_id=%s", eventID, result.Outcome, result.OrderID)

	c.JSON(http.StatusOK, response.FromFallbackResult(result))
}

// Signed handles the push-delivered webhook whose body survived intact. The
// Stripe-Signature header is verified before anything is trusted.
func (h *WebhookHandler) Signed(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] signed body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Could not read request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.ProcessSigned(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Printf("[webhook][handler] signed failed err=%v", err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] signed done event_id=%s outcome=%s", result.EventID, result.Outcome)

	c.JSON(http.StatusOK, response.FromFallbackResult(result))
}

// ProcessPending sweeps the gateway's recent succeeded payments and
// materializes any that never produced an order.
func (h *WebhookHandler) ProcessPending(c *gin.Context) {
	log.Printf("[webhook][handler] pending sweep start")

	result, err := h.usecase.ProcessPending(c.Request.Context())
	if err != nil {
		log.Printf("[webhook][handler] pending sweep failed err=%v", err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] pending sweep done processed=%d skipped=%d", result.Processed, result.Skipped)

	c.JSON(http.StatusOK, response.FromPendingSweep(result))
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, interfaces.ErrIntentNotFound):
		return pkg.NewDomainErrorSimple("EVENT_NOT_FOUND", "Event not found", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrInvalidWebhookSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature verification failed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_CONFIGURED", "Stripe is not configured; set STRIPE_API_KEY", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
