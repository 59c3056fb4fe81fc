package response

import (
	"encoding/json"
	"strings"
	"testing"

	"checkout_service/internal/usecase"
)

func TestFromFallbackResult(t *testing.T) {
	t.Run("created sets success true", func(t *testing.T) {
		res := FromFallbackResult(usecase.FallbackResult{Outcome: usecase.OutcomeCreated, OrderID: "order-1", Message: "Fallback order created from payment"})
		if !res.Received || res.Success == nil || !*res.Success || res.OrderID != "order-1" {
			t.Fatalf("unexpected response: %+v", res)
		}
	})

	t.Run("failed sets success false", func(t *testing.T) {
		res := FromFallbackResult(usecase.FallbackResult{Outcome: usecase.OutcomeFailed, Err: "db"})
		if res.Success == nil || *res.Success || res.Error != "db" {
			t.Fatalf("unexpected response: %+v", res)
		}
	})

	t.Run("no-op omits success from the wire shape", func(t *testing.T) {
		res := FromFallbackResult(usecase.FallbackResult{Outcome: usecase.OutcomeNone, Message: "No unprocessed payments found"})
		if res.Success != nil {
			t.Fatalf("expected nil success: %+v", res)
		}
		raw, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(raw), "success") {
			t.Fatalf("success should be omitted: %s", raw)
		}
		if !strings.Contains(string(raw), `"received":true`) {
			t.Fatalf("expected received flag: %s", raw)
		}
	})

	t.Run("acknowledged carries event type", func(t *testing.T) {
		res := FromFallbackResult(usecase.FallbackResult{Outcome: usecase.OutcomeAcknowledged, EventType: "payment_intent.created"})
		if res.Success != nil || res.EventType != "payment_intent.created" {
			t.Fatalf("unexpected response: %+v", res)
		}
	})
}
