package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout_service/internal/adapter/http/handlers/mocks"
	"checkout_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestDirectPaymentHandler_CreatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing cart_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDirectPaymentUseCase(ctrl)
		h := NewDirectPaymentHandler(uc)

		r := gin.New()
		r.POST("/store/stripe-direct/create-payment", h.CreatePayment)

		req := httptest.NewRequest(http.MethodPost, "/store/stripe-direct/create-payment", bytes.NewBufferString(`{"customer_email":"x@test.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success returns client secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDirectPaymentUseCase(ctrl)
		h := NewDirectPaymentHandler(uc)

		r := gin.New()
		r.POST("/store/stripe-direct/create-payment", h.CreatePayment)

		uc.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.DirectPaymentInput) (usecase.DirectPaymentResult, error) {
				if in.CartID != "cart-1" || in.CustomerEmail != "x@test.com" {
					t.Fatalf("unexpected input: %+v", in)
				}
				if in.ShippingAddress == nil || in.ShippingAddress.CountryCode != "us" {
					t.Fatalf("expected lowercased country code, got %+v", in.ShippingAddress)
				}
				return usecase.DirectPaymentResult{
					Success:         true,
					ClientSecret:    "pi_1_secret",
					PaymentIntentID: "pi_1",
					Amount:          2500,
					Currency:        "usd",
					CartID:          "cart-1",
				}, nil
			})

		payload := `{"cart_id":"cart-1","customer_email":"x@test.com","shipping_address":{"first_name":"Jo","country_code":"US"}}`
		req := httptest.NewRequest(http.MethodPost, "/store/stripe-direct/create-payment", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("expected CORS header")
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["client_secret"] != "pi_1_secret" || body["payment_intent_id"] != "pi_1" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDirectPaymentUseCase(ctrl)
		h := NewDirectPaymentHandler(uc)

		r := gin.New()
		r.POST("/store/stripe-direct/create-payment", h.CreatePayment)

		uc.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(usecase.DirectPaymentResult{}, usecase.ErrGatewayNotConfigured)

		req := httptest.NewRequest(http.MethodPost, "/store/stripe-direct/create-payment", bytes.NewBufferString(`{"cart_id":"cart-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["code"] != "GATEWAY_NOT_CONFIGURED" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		r := gin.New()
		r.OPTIONS("/store/stripe-direct/create-payment", HandlePreflight)

		req := httptest.NewRequest(http.MethodOptions, "/store/stripe-direct/create-payment", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("expected CORS header")
		}
	})
}
