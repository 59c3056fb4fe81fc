package response

import (
	"checkout_service/internal/usecase"
)

type DirectPaymentResponse struct {
	Success         bool   `json:"success"`
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	CartID          string `json:"cart_id"`
	Email           string `json:"email,omitempty"`
	TestPayment     bool   `json:"test_payment,omitempty"`
	Message         string `json:"message,omitempty"`
}

func FromDirectPayment(r usecase.DirectPaymentResult) DirectPaymentResponse {
	return DirectPaymentResponse{
		Success:         r.Success,
		ClientSecret:    r.ClientSecret,
		PaymentIntentID: r.PaymentIntentID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		CartID:          r.CartID,
		Email:           r.Email,
		TestPayment:     r.TestPayment,
		Message:         r.Message,
	}
}
