package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	// recentEventsLimit bounds the event-log scan when no event id could be
	// recovered. At most one event is processed per invocation so a backlog
	// never piles up inside a single request.
	recentEventsLimit = 10

	// pendingSweepLimit and pendingSweepWindow bound the polling sweep.
	pendingSweepLimit  = 50
	pendingSweepWindow = 2 * time.Hour

	fallbackOrderEmail = "noemail@example.com"
)

// FallbackOutcome classifies what a materialization attempt did.
type FallbackOutcome string

const (
	// OutcomeUpdated: an existing order's payment metadata was stamped.
	OutcomeUpdated FallbackOutcome = "updated"
	// OutcomeCreated: a minimal fallback order was created from the intent.
	OutcomeCreated FallbackOutcome = "created"
	// OutcomeNone: nothing to do (no unprocessed payments found).
	OutcomeNone FallbackOutcome = "none"
	// OutcomeAcknowledged: event type carries no materialization action.
	OutcomeAcknowledged FallbackOutcome = "acknowledged"
	// OutcomeFailed: a write failed; reported in-band, never thrown.
	OutcomeFailed FallbackOutcome = "failed"
)

type FallbackResult struct {
	Outcome   FallbackOutcome
	OrderID   string
	EventID   string
	EventType string
	Message   string
	Err       string
}

// PendingOrderOutcome is one order touched by the polling sweep.
type PendingOrderOutcome struct {
	OrderID string `json:"order_id"`
	Type    string `json:"type"`
	Amount  int64  `json:"payment_amount"`
}

type PendingSweepResult struct {
	Processed int                   `json:"processed"`
	Skipped   int                   `json:"skipped"`
	Orders    []PendingOrderOutcome `json:"orders"`
}

// IWebhookFallbackUseCase recovers order materialization when push-based
// webhook delivery failed or was stripped in transit.

type IWebhookFallbackUseCase interface {
	ProcessEvent(ctx context.Context, eventID string) (FallbackResult, error)
	ProcessSigned(ctx context.Context, payload []byte, signature string) (FallbackResult, error)
	ProcessPending(ctx context.Context) (PendingSweepResult, error)
}

type WebhookFallbackUseCase struct {
	orders  interfaces.IOrderRepository
	gateway interfaces.IPaymentGateway
}

var _ IWebhookFallbackUseCase = (*WebhookFallbackUseCase)(nil)

func NewWebhookFallbackUseCase(orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway) *WebhookFallbackUseCase {
	return &WebhookFallbackUseCase{orders: orders, gateway: gateway}
}

// ProcessEvent replays a single gateway event into the order materializer.
// With no event id it scans the gateway's own event log and processes at most
// one unprocessed payment.
func (u *WebhookFallbackUseCase) ProcessEvent(ctx context.Context, eventID string) (FallbackResult, error) {
	if u.gateway == nil {
		return FallbackResult{}, ErrGatewayNotConfigured
	}

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return u.scanRecentEvents(ctx)
	}

	log.Printf("[webhook][usecase] fetching event from gateway event_id=%s", eventID)
	event, err := u.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return FallbackResult{}, err
	}

	if event.Type != entities.EventTypeIntentSucceeded {
		log.Printf("[webhook][usecase] acknowledged event type=%s event_id=%s", event.Type, event.ID)
		return FallbackResult{Outcome: OutcomeAcknowledged, EventID: event.ID, EventType: event.Type}, nil
	}
	res := u.materializeIntent(ctx, event.Intent)
	res.EventID = event.ID
	res.EventType = event.Type
	return res, nil
}

// ProcessSigned handles a push-delivered webhook whose body survived intact:
// the signature is verified first, then the event dispatches into the same
// materializer as the pull path.
func (u *WebhookFallbackUseCase) ProcessSigned(ctx context.Context, payload []byte, signature string) (FallbackResult, error) {
	if u.gateway == nil {
		return FallbackResult{}, ErrGatewayNotConfigured
	}

	event, err := u.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return FallbackResult{}, err
	}
	log.Printf("[webhook][usecase] verified event type=%s event_id=%s", event.Type, event.ID)

	if event.Type != entities.EventTypeIntentSucceeded {
		return FallbackResult{Outcome: OutcomeAcknowledged, EventID: event.ID, EventType: event.Type}, nil
	}
	res := u.materializeIntent(ctx, event.Intent)
	res.EventID = event.ID
	res.EventType = event.Type
	return res, nil
}

func (u *WebhookFallbackUseCase) scanRecentEvents(ctx context.Context) (FallbackResult, error) {
	log.Printf("[webhook][usecase] no event id, scanning recent events")
	events, err := u.gateway.ListSucceededEvents(ctx, recentEventsLimit, time.Time{})
	if err != nil {
		return FallbackResult{}, err
	}

	for _, event := range events {
		if event.Type != entities.EventTypeIntentSucceeded || event.Intent.ID == "" {
			continue
		}
		existing, lookupErr := u.orders.GetByIntentID(ctx, event.Intent.ID)
		if lookupErr != nil {
			log.Printf("[webhook][usecase] existing order lookup failed intent_id=%s err=%v", event.Intent.ID, lookupErr)
			continue
		}
		if existing.ID != "" {
			log.Printf("[webhook][usecase] payment already processed intent_id=%s order_id=%s", event.Intent.ID, existing.ID)
			continue
		}

		log.Printf("[webhook][usecase] processing unprocessed payment intent_id=%s", event.Intent.ID)
		res := u.materializeIntent(ctx, event.Intent)
		res.EventID = event.ID
		res.EventType = event.Type
		return res, nil
	}

	log.Printf("[webhook][usecase] no unprocessed payments found")
	return FallbackResult{Outcome: OutcomeNone, Message: "No unprocessed payments found"}, nil
}

// ProcessPending sweeps the recent event log and ensures every succeeded
// payment has an order. Unlike the fallback scan this processes everything it
// finds, since it runs from a manual or scheduled call, not a webhook retry.
func (u *WebhookFallbackUseCase) ProcessPending(ctx context.Context) (PendingSweepResult, error) {
	if u.gateway == nil {
		return PendingSweepResult{}, ErrGatewayNotConfigured
	}

	log.Printf("[webhook][usecase] pending sweep start window=%s", pendingSweepWindow)
	events, err := u.gateway.ListSucceededEvents(ctx, pendingSweepLimit, time.Now().Add(-pendingSweepWindow))
	if err != nil {
		return PendingSweepResult{}, err
	}

	sweep := PendingSweepResult{Orders: []PendingOrderOutcome{}}
	for _, event := range events {
		if event.Intent.ID == "" {
			continue
		}
		existing, lookupErr := u.orders.GetByIntentID(ctx, event.Intent.ID)
		if lookupErr != nil {
			log.Printf("[webhook][usecase] sweep lookup failed intent_id=%s err=%v", event.Intent.ID, lookupErr)
			continue
		}
		if existing.ID != "" {
			sweep.Skipped++
			continue
		}

		res := u.materializeIntent(ctx, event.Intent)
		if res.Outcome == OutcomeFailed {
			log.Printf("[webhook][usecase] sweep materialization failed intent_id=%s err=%s", event.Intent.ID, res.Err)
			continue
		}
		sweep.Processed++
		sweep.Orders = append(sweep.Orders, PendingOrderOutcome{
			OrderID: res.OrderID,
			Type:    string(res.Outcome),
			Amount:  event.Intent.Amount,
		})
	}

	log.Printf("[webhook][usecase] pending sweep done processed=%d skipped=%d", sweep.Processed, sweep.Skipped)
	return sweep, nil
}

// materializeIntent is the intent-driven entry point of the order
// materializer. Write failures are reported in the result, never raised, so
// the webhook caller always gets an acknowledgement.
func (u *WebhookFallbackUseCase) materializeIntent(ctx context.Context, intent entities.PaymentIntent) FallbackResult {
	now := time.Now().UTC()
	capturedMetadata := map[string]any{
		entities.MetaPaymentCaptured:    true,
		entities.MetaPaymentIntentID:    intent.ID,
		entities.MetaPaymentStatus:      "captured",
		entities.MetaAmountReceived:     receivedAmount(intent),
		entities.MetaWebhookProcessed:   true,
		entities.MetaWebhookProcessedAt: now.Format(time.RFC3339Nano),
	}

	// An order id stamped on the intent at creation time wins over any lookup.
	if orderID := intent.Metadata["order_id"]; orderID != "" {
		if _, err := u.orders.UpdateMetadata(ctx, orderID, capturedMetadata); err != nil {
			log.Printf("[webhook][usecase] order update failed order_id=%s err=%v", orderID, err)
			return FallbackResult{Outcome: OutcomeFailed, Err: err.Error()}
		}
		log.Printf("[webhook][usecase] updated order payment status order_id=%s intent_id=%s", orderID, intent.ID)
		return FallbackResult{Outcome: OutcomeUpdated, OrderID: orderID, Message: "Payment status updated"}
	}

	existing, err := u.orders.GetByIntentID(ctx, intent.ID)
	if err != nil {
		log.Printf("[webhook][usecase] existing order lookup failed intent_id=%s err=%v", intent.ID, err)
		return FallbackResult{Outcome: OutcomeFailed, Err: err.Error()}
	}
	if existing.ID != "" {
		if _, err := u.orders.UpdateMetadata(ctx, existing.ID, capturedMetadata); err != nil {
			log.Printf("[webhook][usecase] order update failed order_id=%s err=%v", existing.ID, err)
			return FallbackResult{Outcome: OutcomeFailed, Err: err.Error()}
		}
		log.Printf("[webhook][usecase] updated existing order order_id=%s intent_id=%s", existing.ID, intent.ID)
		return FallbackResult{Outcome: OutcomeUpdated, OrderID: existing.ID, Message: "Payment status updated"}
	}

	log.Printf("[webhook][usecase] no order found, creating fallback order intent_id=%s", intent.ID)
	order := u.buildFallbackOrder(intent, now)
	created, err := u.orders.CreateIdempotent(ctx, order)
	if err != nil {
		if errors.Is(err, interfaces.ErrOrderConflict) {
			// Raced with another materialization; the existing order is the
			// outcome we wanted.
			racedOrder, lookupErr := u.orders.GetByIntentID(ctx, intent.ID)
			if lookupErr == nil && racedOrder.ID != "" {
				return FallbackResult{Outcome: OutcomeUpdated, OrderID: racedOrder.ID, Message: "Payment status updated"}
			}
		}
		log.Printf("[webhook][usecase] fallback order create failed intent_id=%s err=%v", intent.ID, err)
		return FallbackResult{Outcome: OutcomeFailed, Err: err.Error(), Message: "Failed to create fallback order"}
	}

	log.Printf("[webhook][usecase] created fallback order order_id=%s intent_id=%s", created.ID, intent.ID)
	return FallbackResult{Outcome: OutcomeCreated, OrderID: created.ID, Message: "Fallback order created from payment"}
}

func (u *WebhookFallbackUseCase) buildFallbackOrder(intent entities.PaymentIntent, now time.Time) entities.Order {
	email := intent.Metadata["email"]
	if email == "" {
		email = intent.ReceiptEmail
	}
	if email == "" {
		email = fallbackOrderEmail
	}
	currency := intent.Currency
	if currency == "" {
		currency = fallbackCurrency
	}
	cartID := intent.Metadata[entities.MetaCartID]
	if cartID == "" {
		cartID = "no-cart"
	}
	title := intent.Description
	if title == "" {
		title = "Product"
	}

	return entities.Order{
		ID:           uuid.NewString(),
		Email:        email,
		CurrencyCode: currency,
		Total:        intent.Amount,
		Subtotal:     intent.Amount,
		Items: []entities.OrderItem{{
			Title:     title,
			Quantity:  1,
			UnitPrice: intent.Amount,
			Metadata: map[string]any{
				entities.MetaPaymentIntentID: intent.ID,
				entities.MetaFallbackOrder:   true,
			},
		}},
		PaymentIntentID: intent.ID,
		CartID:          cartID,
		Metadata: map[string]any{
			entities.MetaCartID:             cartID,
			entities.MetaPaymentIntentID:    intent.ID,
			entities.MetaPaymentCaptured:    true,
			entities.MetaPaymentStatus:      "captured",
			entities.MetaAmountReceived:     receivedAmount(intent),
			entities.MetaCreatedFrom:        "webhook_fallback",
			entities.MetaFallbackOrder:      true,
			entities.MetaWebhookProcessed:   true,
			entities.MetaWebhookProcessedAt: now.Format(time.RFC3339Nano),
		},
		CreatedAt: now,
	}
}

func receivedAmount(intent entities.PaymentIntent) int64 {
	if intent.AmountReceived > 0 {
		return intent.AmountReceived
	}
	return intent.Amount
}
