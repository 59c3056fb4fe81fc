package response

import (
	"checkout_service/internal/usecase"
)

// WebhookFallbackResponse always reports received so the gateway never
// retries. Success is a tri-state: absent when the call was a no-op or a
// plain acknowledgement, true/false when a materialization was attempted.
type WebhookFallbackResponse struct {
	Received  bool   `json:"received"`
	Success   *bool  `json:"success,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

func FromFallbackResult(r usecase.FallbackResult) WebhookFallbackResponse {
	res := WebhookFallbackResponse{
		Received: true,
		OrderID:  r.OrderID,
		Message:  r.Message,
		Error:    r.Err,
	}
	switch r.Outcome {
	case usecase.OutcomeUpdated, usecase.OutcomeCreated:
		res.Success = boolPtr(true)
	case usecase.OutcomeFailed:
		res.Success = boolPtr(false)
	case usecase.OutcomeAcknowledged:
		res.EventType = r.EventType
	}
	return res
}

type PendingSweepResponse struct {
	Success   bool                          `json:"success"`
	Processed int                           `json:"processed"`
	Skipped   int                           `json:"skipped"`
	Orders    []usecase.PendingOrderOutcome `json:"orders"`
}

func FromPendingSweep(r usecase.PendingSweepResult) PendingSweepResponse {
	return PendingSweepResponse{
		Success:   true,
		Processed: r.Processed,
		Skipped:   r.Skipped,
		Orders:    r.Orders,
	}
}

func boolPtr(b bool) *bool { return &b }
