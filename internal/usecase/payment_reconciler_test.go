package usecase

import (
	"context"
	"errors"
	"testing"

	"checkout_service/internal/domain/entities"
	mock_interfaces "checkout_service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentReconciler_Reconcile(t *testing.T) {
	t.Run("no stripe session", func(t *testing.T) {
		r := NewPaymentReconciler(nil)
		_, err := r.Reconcile(context.Background(), entities.Cart{ID: "cart-1"})
		if !errors.Is(err, ErrNoPaymentSession) {
			t.Fatalf("expected ErrNoPaymentSession, got %v", err)
		}
	})

	t.Run("unknown provider sessions are ignored", func(t *testing.T) {
		r := NewPaymentReconciler(nil)
		cart := entities.Cart{
			ID: "cart-1",
			PaymentCollection: &entities.PaymentCollection{
				PaymentSessions: []entities.PaymentSession{{ID: "payses_1", ProviderID: "pp_paypal"}},
			},
		}
		_, err := r.Reconcile(context.Background(), cart)
		if !errors.Is(err, ErrNoPaymentSession) {
			t.Fatalf("expected ErrNoPaymentSession, got %v", err)
		}
	})

	t.Run("session without intent id proceeds without gateway read", func(t *testing.T) {
		r := NewPaymentReconciler(nil)
		cart := entities.Cart{
			ID: "cart-1",
			PaymentCollection: &entities.PaymentCollection{
				PaymentSessions: []entities.PaymentSession{{ID: "payses_1", ProviderID: "stripe"}},
			},
		}
		res, err := r.Reconcile(context.Background(), cart)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IntentID != "" || res.SkipCapture {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("succeeded at gateway sets skip capture", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		r := NewPaymentReconciler(gateway)

		gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(entities.PaymentIntent{ID: "pi_1", Status: entities.IntentStatusSucceeded}, nil)

		res, err := r.Reconcile(context.Background(), cartWithSession("cart-1", "pi_1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.SkipCapture || res.GatewayStatus != entities.IntentStatusSucceeded {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("requires_capture proceeds to capture", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		r := NewPaymentReconciler(gateway)

		gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(entities.PaymentIntent{ID: "pi_1", Status: entities.IntentStatusRequiresCapture}, nil)

		res, err := r.Reconcile(context.Background(), cartWithSession("cart-1", "pi_1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.SkipCapture {
			t.Fatalf("did not expect skip capture: %+v", res)
		}
	})

	t.Run("gateway read failure is non-fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		r := NewPaymentReconciler(gateway)

		gateway.EXPECT().GetIntent(gomock.Any(), "pi_1").Return(entities.PaymentIntent{}, errors.New("timeout"))

		res, err := r.Reconcile(context.Background(), cartWithSession("cart-1", "pi_1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IntentID != "pi_1" || res.SkipCapture || res.GatewayStatus != "" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}
