package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidCartID      = errors.New("invalid cart_id")
	ErrInvalidIntentID    = errors.New("invalid payment_intent_id")
	ErrPaymentNotComplete = errors.New("payment not successful")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderIDUnresolved  = errors.New("no order_id found in request or payment metadata")
)

const (
	completeTypeOrder = "order"
	completeTypeCart  = "cart"

	supportMessage = "Your payment was already processed. Please contact support with your cart id to confirm your order."
)

// CompleteResult is the outcome of a completion attempt. Type is "order" on
// success and "cart" on any failure; failures are carried in-band because the
// checkout-facing endpoint always answers 200.
type CompleteResult struct {
	Type            string         `json:"type"`
	Order           entities.Order `json:"order,omitempty"`
	CartID          string         `json:"cart_id,omitempty"`
	Error           string         `json:"error,omitempty"`
	PaymentCaptured bool           `json:"payment_captured,omitempty"`
	Message         string         `json:"message,omitempty"`
}

// ConfirmResult is the outcome of a frontend-driven payment confirmation.
type ConfirmResult struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	OrderID          string    `json:"order_id"`
	PaymentIntentID  string    `json:"payment_intent_id"`
	PaymentStatus    string    `json:"payment_status"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	AlreadyProcessed bool      `json:"already_processed,omitempty"`
	ConfirmedAt      time.Time `json:"confirmed_at"`
}

// ICheckoutUseCase covers the cart-driven completion path and the
// frontend-driven confirmation path.

type ICheckoutUseCase interface {
	Complete(ctx context.Context, cartID string) (CompleteResult, error)
	Confirm(ctx context.Context, intentID, orderID string) (ConfirmResult, error)
}

type CheckoutUseCase struct {
	carts      interfaces.ICartRepository
	orders     interfaces.IOrderRepository
	gateway    interfaces.IPaymentGateway
	reconciler *PaymentReconciler
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(carts interfaces.ICartRepository, orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:      carts,
		orders:     orders,
		gateway:    gateway,
		reconciler: NewPaymentReconciler(gateway),
	}
}

// Complete turns a completed cart into exactly one order. The gateway is
// consulted for ground truth first so a payment it already settled is never
// captured twice; duplicate completion attempts resolve to the existing
// order through the storage-level correlation constraint.
func (u *CheckoutUseCase) Complete(ctx context.Context, cartID string) (CompleteResult, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return CompleteResult{}, ErrInvalidCartID
	}
	log.Printf("[checkout][usecase] complete start cart_id=%s", cartID)

	cart, err := u.carts.GetSnapshot(ctx, cartID)
	if err != nil {
		log.Printf("[checkout][usecase] cart snapshot failed cart_id=%s err=%v", cartID, err)
		return CompleteResult{Type: completeTypeCart, CartID: cartID, Error: "Failed to load cart"}, nil
	}
	if cart.ID == "" {
		log.Printf("[checkout][usecase] cart not found cart_id=%s", cartID)
		return CompleteResult{Type: completeTypeCart, CartID: cartID, Error: "Cart not found"}, nil
	}

	rec, err := u.reconciler.Reconcile(ctx, cart)
	if err != nil {
		if errors.Is(err, ErrNoPaymentSession) {
			return CompleteResult{Type: completeTypeCart, CartID: cartID, Error: "No payment session found"}, nil
		}
		return CompleteResult{}, err
	}

	if rec.IntentID != "" && !rec.SkipCapture {
		if _, err := u.gateway.CaptureIntent(ctx, rec.IntentID); err != nil {
			if errors.Is(err, interfaces.ErrIntentAlreadyCaptured) {
				log.Printf("[checkout][usecase] capture reported already-captured cart_id=%s intent_id=%s", cartID, rec.IntentID)
				return CompleteResult{
					Type:            completeTypeCart,
					CartID:          cartID,
					PaymentCaptured: true,
					Message:         supportMessage,
				}, nil
			}
			log.Printf("[checkout][usecase] capture failed cart_id=%s intent_id=%s err=%v", cartID, rec.IntentID, err)
			return CompleteResult{Type: completeTypeCart, CartID: cartID, Error: fmt.Sprintf("Payment capture failed: %v", err)}, nil
		}
	}

	order := u.buildOrderFromCart(ctx, cart, rec)
	created, err := u.orders.CreateIdempotent(ctx, order)
	if err != nil {
		if errors.Is(err, interfaces.ErrOrderConflict) {
			existing, lookupErr := u.lookupExisting(ctx, rec.IntentID, cartID)
			if lookupErr == nil && existing.ID != "" {
				log.Printf("[checkout][usecase] completion raced, returning existing order cart_id=%s order_id=%s", cartID, existing.ID)
				return CompleteResult{Type: completeTypeOrder, Order: existing}, nil
			}
			return CompleteResult{
				Type:            completeTypeCart,
				CartID:          cartID,
				PaymentCaptured: true,
				Message:         supportMessage,
			}, nil
		}
		log.Printf("[checkout][usecase] order create failed cart_id=%s err=%v", cartID, err)
		return CompleteResult{Type: completeTypeCart, CartID: cartID, Error: fmt.Sprintf("Failed to create order: %v", err)}, nil
	}

	// Non-essential side effect: record the reconciliation outcome on the
	// payment collection. Failure does not downgrade the completed order.
	if cart.PaymentCollection != nil && rec.IntentID != "" {
		mergeErr := u.carts.MergePaymentCollectionMetadata(ctx, cartID, map[string]string{
			entities.MetaPaymentIntentID: rec.IntentID,
			entities.MetaPaymentStatus:   "captured",
		})
		if mergeErr != nil {
			log.Printf("[checkout][usecase] payment collection metadata merge failed cart_id=%s err=%v", cartID, mergeErr)
		}
	}

	log.Printf("[checkout][usecase] complete success cart_id=%s order_id=%s", cartID, created.ID)
	return CompleteResult{Type: completeTypeOrder, Order: created}, nil
}

func (u *CheckoutUseCase) buildOrderFromCart(ctx context.Context, cart entities.Cart, rec ReconcileResult) entities.Order {
	items, err := u.carts.ListItems(ctx, cart.ID)
	if err != nil || len(items) == 0 {
		if err != nil {
			log.Printf("[checkout][usecase] cart items lookup failed cart_id=%s err=%v", cart.ID, err)
		}
		items = []entities.CartItem{{Title: fmt.Sprintf("Cart %s", cart.ID), Quantity: 1, UnitPrice: cart.Total}}
	}

	orderItems := make([]entities.OrderItem, 0, len(items))
	var subtotal int64
	for _, it := range items {
		subtotal += it.UnitPrice * it.Quantity
		orderItems = append(orderItems, entities.OrderItem{
			Title:     it.Title,
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	now := time.Now().UTC()
	metadata := map[string]any{
		entities.MetaCartID:        cart.ID,
		entities.MetaCreatedFrom:   "cart_completion",
		entities.MetaPaymentStatus: string(rec.Session.Status),
		"completed_at":             now.Format(time.RFC3339Nano),
	}
	if rec.IntentID != "" {
		metadata[entities.MetaPaymentIntentID] = rec.IntentID
		metadata[entities.MetaPaymentCaptured] = true
		metadata[entities.MetaPaymentStatus] = "captured"
	}

	return entities.Order{
		ID:              uuid.NewString(),
		Email:           cart.Email,
		CurrencyCode:    cart.CurrencyCode,
		Total:           cart.Total,
		Subtotal:        subtotal,
		Items:           orderItems,
		PaymentIntentID: rec.IntentID,
		CartID:          cart.ID,
		Metadata:        metadata,
		CreatedAt:       now,
	}
}

func (u *CheckoutUseCase) lookupExisting(ctx context.Context, intentID, cartID string) (entities.Order, error) {
	if intentID != "" {
		return u.orders.GetByIntentID(ctx, intentID)
	}
	return u.orders.GetByCartID(ctx, cartID)
}

// Confirm verifies a payment with the gateway and marks the matching order
// captured. Repeat calls are answered with already_processed instead of a
// second metadata write.
func (u *CheckoutUseCase) Confirm(ctx context.Context, intentID, orderID string) (ConfirmResult, error) {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return ConfirmResult{}, ErrInvalidIntentID
	}
	log.Printf("[checkout][usecase] confirm start intent_id=%s order_id=%s", intentID, orderID)

	intent, err := u.gateway.GetIntent(ctx, intentID)
	if err != nil {
		return ConfirmResult{}, err
	}
	if intent.Status != entities.IntentStatusSucceeded {
		return ConfirmResult{}, fmt.Errorf("%w: status=%s", ErrPaymentNotComplete, intent.Status)
	}

	targetOrderID := strings.TrimSpace(orderID)
	if targetOrderID == "" {
		targetOrderID = intent.Metadata["order_id"]
	}
	if targetOrderID == "" {
		log.Printf("[checkout][usecase] confirm could not resolve order intent_id=%s", intentID)
		return ConfirmResult{}, ErrOrderIDUnresolved
	}

	order, err := u.orders.GetByID(ctx, targetOrderID)
	if err != nil {
		return ConfirmResult{}, err
	}
	if order.ID == "" {
		return ConfirmResult{}, fmt.Errorf("%w: %s", ErrOrderNotFound, targetOrderID)
	}

	now := time.Now().UTC()
	if order.PaymentCaptured() {
		log.Printf("[checkout][usecase] confirm already processed order_id=%s", order.ID)
		return ConfirmResult{
			Success:          true,
			Message:          "Payment already confirmed",
			OrderID:          order.ID,
			PaymentIntentID:  intentID,
			PaymentStatus:    "captured",
			Amount:           intent.Amount,
			Currency:         intent.Currency,
			AlreadyProcessed: true,
			ConfirmedAt:      now,
		}, nil
	}

	_, err = u.orders.UpdateMetadata(ctx, order.ID, map[string]any{
		entities.MetaPaymentCaptured: true,
		entities.MetaPaymentStatus:   "captured",
		entities.MetaPaymentIntentID: intentID,
		entities.MetaConfirmedAt:     now.Format(time.RFC3339Nano),
		entities.MetaAmountReceived:  intent.AmountReceived,
	})
	if err != nil {
		return ConfirmResult{}, err
	}

	log.Printf("[checkout][usecase] confirm success order_id=%s intent_id=%s", order.ID, intentID)
	return ConfirmResult{
		Success:         true,
		Message:         "Payment confirmed successfully",
		OrderID:         order.ID,
		PaymentIntentID: intentID,
		PaymentStatus:   "captured",
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		ConfirmedAt:     now,
	}, nil
}
