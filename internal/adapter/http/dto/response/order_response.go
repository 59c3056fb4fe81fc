package response

import (
	"time"

	"checkout_service/internal/domain/entities"
)

type OrderItemResponse struct {
	Title     string `json:"title"`
	ProductID string `json:"product_id,omitempty"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	Email           string              `json:"email"`
	CurrencyCode    string              `json:"currency_code"`
	Total           int64               `json:"total"`
	Subtotal        int64               `json:"subtotal"`
	TaxTotal        int64               `json:"tax_total"`
	ShippingTotal   int64               `json:"shipping_total"`
	DiscountTotal   int64               `json:"discount_total"`
	Items           []OrderItemResponse `json:"items"`
	PaymentIntentID string              `json:"payment_intent_id,omitempty"`
	CartID          string              `json:"cart_id,omitempty"`
	Metadata        map[string]any      `json:"metadata,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			Title:     it.Title,
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		Email:           o.Email,
		CurrencyCode:    o.CurrencyCode,
		Total:           o.Total,
		Subtotal:        o.Subtotal,
		TaxTotal:        o.TaxTotal,
		ShippingTotal:   o.ShippingTotal,
		DiscountTotal:   o.DiscountTotal,
		Items:           items,
		PaymentIntentID: o.PaymentIntentID,
		CartID:          o.CartID,
		Metadata:        o.Metadata,
		CreatedAt:       o.CreatedAt,
	}
}
