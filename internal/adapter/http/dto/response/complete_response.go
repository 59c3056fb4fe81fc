package response

import (
	"checkout_service/internal/usecase"
)

// CompleteResponse mirrors the completion contract: type is "order" with the
// created order on success, "cart" with an in-band error otherwise. Both
// shapes go out with status 200.
type CompleteResponse struct {
	Type            string         `json:"type"`
	Order           *OrderResponse `json:"order,omitempty"`
	CartID          string         `json:"cart_id,omitempty"`
	Error           string         `json:"error,omitempty"`
	PaymentCaptured bool           `json:"payment_captured,omitempty"`
	Message         string         `json:"message,omitempty"`
}

func FromCompleteResult(r usecase.CompleteResult) CompleteResponse {
	res := CompleteResponse{
		Type:            r.Type,
		CartID:          r.CartID,
		Error:           r.Error,
		PaymentCaptured: r.PaymentCaptured,
		Message:         r.Message,
	}
	if r.Order.ID != "" {
		order := FromOrder(r.Order)
		res.Order = &order
	}
	return res
}
