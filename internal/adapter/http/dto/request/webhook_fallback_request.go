package request

import "strings"

// WebhookFallbackRequest is the optional body of the webhook fallback route.
// The body may be entirely absent when the hosting layer stripped it, which
// is exactly the failure this route exists to recover from.
type WebhookFallbackRequest struct {
	ID string `json:"id"`
}

// ConfirmPaymentRequest is the payload for the frontend-driven payment
// confirmation route.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	OrderID         string `json:"order_id"`
}

// ResolveEventID picks the gateway event id from the available sources in
// priority order: request body, custom header, query parameter. Returns ""
// when none carries an id.
func ResolveEventID(bodyID, headerID, queryID string) string {
	if v := strings.TrimSpace(bodyID); v != "" {
		return v
	}
	if v := strings.TrimSpace(headerID); v != "" {
		return v
	}
	return strings.TrimSpace(queryID)
}
