package response

import (
	"testing"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase"
)

func TestFromCompleteResult(t *testing.T) {
	now := time.Now().UTC()

	t.Run("order result embeds the order", func(t *testing.T) {
		res := FromCompleteResult(usecase.CompleteResult{
			Type: "order",
			Order: entities.Order{
				ID:              "order-1",
				Email:           "buyer@example.com",
				CurrencyCode:    "usd",
				Total:           2500,
				Subtotal:        2500,
				Items:           []entities.OrderItem{{Title: "Oxford Shirt", Quantity: 2, UnitPrice: 1250}},
				PaymentIntentID: "pi_1",
				CartID:          "cart-1",
				CreatedAt:       now,
			},
		})
		if res.Type != "order" || res.Order == nil {
			t.Fatalf("unexpected response: %+v", res)
		}
		if res.Order.ID != "order-1" || res.Order.PaymentIntentID != "pi_1" {
			t.Fatalf("unexpected order mapping: %+v", res.Order)
		}
		if len(res.Order.Items) != 1 || res.Order.Items[0].UnitPrice != 1250 {
			t.Fatalf("unexpected items: %+v", res.Order.Items)
		}
	})

	t.Run("cart result carries in-band error without order", func(t *testing.T) {
		res := FromCompleteResult(usecase.CompleteResult{Type: "cart", CartID: "cart-1", Error: "No payment session found"})
		if res.Type != "cart" || res.Order != nil || res.Error != "No payment session found" {
			t.Fatalf("unexpected response: %+v", res)
		}
	})
}
