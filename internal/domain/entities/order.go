package entities

import "time"

// Order metadata keys. The metadata map is the only mechanism for recording
// payment reconciliation state; there is no dedicated ledger.
const (
	MetaPaymentCaptured    = "payment_captured"
	MetaPaymentIntentID    = "payment_intent_id"
	MetaPaymentStatus      = "payment_status"
	MetaCartID             = "cart_id"
	MetaCreatedFrom        = "created_from"
	MetaFallbackOrder      = "fallback_order"
	MetaWebhookProcessed   = "webhook_processed"
	MetaWebhookProcessedAt = "webhook_processed_at"
	MetaConfirmedAt        = "payment_confirmed_at"
	MetaAmountReceived     = "stripe_amount_received"
	MetaAlreadyProcessed   = "already_processed"
)

// OrderItem is one persisted order line. UnitPrice is in integer cents.
type OrderItem struct {
	Title     string         `json:"title"`
	ProductID string         `json:"product_id,omitempty"`
	VariantID string         `json:"variant_id,omitempty"`
	Quantity  int64          `json:"quantity"`
	UnitPrice int64          `json:"unit_price"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Order is the persisted result of materialization. At most one order exists
// per payment-intent id; the intent id is the canonical correlation key, the
// cart id is used only when a cart never reached the gateway.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI: payment_intent_id-index (PK: payment_intent_id)
//   - GSI: cart_id-index (PK: cart_id)
type Order struct {
	ID              string         `json:"id"`
	Email           string         `json:"email"`
	CurrencyCode    string         `json:"currency_code"`
	Total           int64          `json:"total"`
	Subtotal        int64          `json:"subtotal"`
	TaxTotal        int64          `json:"tax_total"`
	ShippingTotal   int64          `json:"shipping_total"`
	DiscountTotal   int64          `json:"discount_total"`
	Items           []OrderItem    `json:"items"`
	PaymentIntentID string         `json:"payment_intent_id,omitempty"`
	CartID          string         `json:"cart_id,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CorrelationKey is the canonical key that guards exactly-once creation:
// the payment-intent id when the payment reached the gateway, the cart id
// otherwise.
func (o Order) CorrelationKey() string {
	if o.PaymentIntentID != "" {
		return o.PaymentIntentID
	}
	return o.CartID
}

// PaymentCaptured reports whether the metadata ledger marks this order's
// payment as captured.
func (o Order) PaymentCaptured() bool {
	if o.Metadata == nil {
		return false
	}
	v, ok := o.Metadata[MetaPaymentCaptured].(bool)
	return ok && v
}
