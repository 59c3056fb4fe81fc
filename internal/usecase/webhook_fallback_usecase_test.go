package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"
	mock_interfaces "checkout_service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func succeededEvent(eventID, intentID string) entities.PaymentEvent {
	return entities.PaymentEvent{
		ID:   eventID,
		Type: entities.EventTypeIntentSucceeded,
		Intent: entities.PaymentIntent{
			ID:             intentID,
			Status:         entities.IntentStatusSucceeded,
			Amount:         2500,
			AmountReceived: 2500,
			Currency:       "usd",
			Description:    "Cart cart-1",
			Metadata:       map[string]string{entities.MetaCartID: "cart-1", "email": "buyer@example.com"},
		},
	}
}

func TestWebhookFallbackUseCase_ProcessEvent(t *testing.T) {
	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewWebhookFallbackUseCase(nil, nil)
		_, err := uc.ProcessEvent(context.Background(), "evt_1")
		if !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("non-succeeded event is acknowledged without writes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().GetEvent(gomock.Any(), "evt_1").Return(entities.PaymentEvent{ID: "evt_1", Type: "payment_intent.created"}, nil)

		res, err := uc.ProcessEvent(context.Background(), "evt_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeAcknowledged || res.EventType != "payment_intent.created" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("order id in intent metadata wins over lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		event := succeededEvent("evt_1", "pi_1")
		event.Intent.Metadata["order_id"] = "order-1"
		gateway.EXPECT().GetEvent(gomock.Any(), "evt_1").Return(event, nil)
		orders.EXPECT().UpdateMetadata(gomock.Any(), "order-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, metadata map[string]any) (entities.Order, error) {
				if processed, _ := metadata[entities.MetaWebhookProcessed].(bool); !processed {
					t.Fatalf("expected webhook_processed metadata, got %+v", metadata)
				}
				return entities.Order{ID: id}, nil
			})

		res, err := uc.ProcessEvent(context.Background(), "evt_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeUpdated || res.OrderID != "order-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("existing order by intent id is updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().GetEvent(gomock.Any(), "evt_1").Return(succeededEvent("evt_1", "pi_1"), nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{ID: "order-1", PaymentIntentID: "pi_1"}, nil)
		orders.EXPECT().UpdateMetadata(gomock.Any(), "order-1", gomock.Any()).Return(entities.Order{ID: "order-1"}, nil)

		res, err := uc.ProcessEvent(context.Background(), "evt_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeUpdated || res.OrderID != "order-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("missing order materializes a fallback order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().GetEvent(gomock.Any(), "evt_1").Return(succeededEvent("evt_1", "pi_1"), nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{}, nil)
		orders.EXPECT().CreateIdempotent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.PaymentIntentID != "pi_1" || o.Email != "buyer@example.com" {
					t.Fatalf("unexpected fallback order: %+v", o)
				}
				if o.Total != 2500 || len(o.Items) != 1 || o.Items[0].UnitPrice != 2500 {
					t.Fatalf("unexpected fallback order shape: %+v", o)
				}
				if fallback, _ := o.Metadata[entities.MetaFallbackOrder].(bool); !fallback {
					t.Fatalf("expected fallback_order metadata, got %+v", o.Metadata)
				}
				return o, nil
			})

		res, err := uc.ProcessEvent(context.Background(), "evt_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeCreated || res.OrderID == "" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("racing materializations converge on one order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().GetEvent(gomock.Any(), "evt_1").Return(succeededEvent("evt_1", "pi_1"), nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{}, nil)
		orders.EXPECT().CreateIdempotent(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrOrderConflict)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{ID: "order-1"}, nil)

		res, err := uc.ProcessEvent(context.Background(), "evt_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeUpdated || res.OrderID != "order-1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("write failure is reported in-band", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().GetEvent(gomock.Any(), "evt_1").Return(succeededEvent("evt_1", "pi_1"), nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{}, errors.New("db"))

		res, err := uc.ProcessEvent(context.Background(), "evt_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeFailed || res.Err == "" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestWebhookFallbackUseCase_ScanRecentEvents(t *testing.T) {
	t.Run("processes at most one unprocessed payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().ListSucceededEvents(gomock.Any(), 10, time.Time{}).Return([]entities.PaymentEvent{
			succeededEvent("evt_1", "pi_1"),
			succeededEvent("evt_2", "pi_2"),
		}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{ID: "order-1"}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_2").Return(entities.Order{}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_2").Return(entities.Order{}, nil)
		orders.EXPECT().CreateIdempotent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil })

		res, err := uc.ProcessEvent(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeCreated || res.EventID != "evt_2" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("all processed reports no unprocessed payments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().ListSucceededEvents(gomock.Any(), 10, time.Time{}).Return([]entities.PaymentEvent{
			succeededEvent("evt_1", "pi_1"),
		}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{ID: "order-1"}, nil)

		res, err := uc.ProcessEvent(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeNone || res.Message != "No unprocessed payments found" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestWebhookFallbackUseCase_ProcessSigned(t *testing.T) {
	t.Run("invalid signature is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(nil, gateway)

		gateway.EXPECT().VerifyWebhook(gomock.Any(), "bad-sig").Return(entities.PaymentEvent{}, interfaces.ErrInvalidWebhookSignature)

		_, err := uc.ProcessSigned(context.Background(), []byte(`{}`), "bad-sig")
		if !errors.Is(err, interfaces.ErrInvalidWebhookSignature) {
			t.Fatalf("expected ErrInvalidWebhookSignature, got %v", err)
		}
	})

	t.Run("verified succeeded event materializes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().VerifyWebhook(gomock.Any(), "sig").Return(succeededEvent("evt_1", "pi_1"), nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{ID: "order-1"}, nil)
		orders.EXPECT().UpdateMetadata(gomock.Any(), "order-1", gomock.Any()).Return(entities.Order{ID: "order-1"}, nil)

		res, err := uc.ProcessSigned(context.Background(), []byte(`{}`), "sig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeUpdated || res.EventID != "evt_1" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestWebhookFallbackUseCase_ProcessPending(t *testing.T) {
	t.Run("counts processed and skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(orders, gateway)

		gateway.EXPECT().ListSucceededEvents(gomock.Any(), 50, gomock.Any()).Return([]entities.PaymentEvent{
			succeededEvent("evt_1", "pi_1"),
			succeededEvent("evt_2", "pi_2"),
			succeededEvent("evt_3", "pi_3"),
		}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_1").Return(entities.Order{ID: "order-1"}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_2").Return(entities.Order{}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_2").Return(entities.Order{}, nil)
		orders.EXPECT().CreateIdempotent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil })
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_3").Return(entities.Order{}, nil)
		orders.EXPECT().GetByIntentID(gomock.Any(), "pi_3").Return(entities.Order{}, errors.New("db"))

		res, err := uc.ProcessPending(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Processed != 1 || res.Skipped != 1 {
			t.Fatalf("unexpected sweep counts: %+v", res)
		}
		if len(res.Orders) != 1 || res.Orders[0].Amount != 2500 {
			t.Fatalf("unexpected sweep orders: %+v", res.Orders)
		}
	})

	t.Run("gateway error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookFallbackUseCase(nil, gateway)

		gateway.EXPECT().ListSucceededEvents(gomock.Any(), 50, gomock.Any()).Return(nil, errors.New("stripe down"))

		_, err := uc.ProcessPending(context.Background())
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}
