package entities

import "time"

// PaymentProvider identifies the external processor behind a payment session.
//
// Historically the session provider id appeared in two formats depending on
// the integration version ("stripe" vs "pp_stripe_stripe"). Instead of string
// matching at call sites, providerAliases maps every known spelling to one
// normalized value.

type PaymentProvider string

const (
	ProviderStripe PaymentProvider = "stripe"
)

var providerAliases = map[string]PaymentProvider{
	"stripe":           ProviderStripe,
	"pp_stripe_stripe": ProviderStripe,
}

// NormalizeProvider resolves a raw provider id string to its canonical value.
func NormalizeProvider(raw string) (PaymentProvider, bool) {
	p, ok := providerAliases[raw]
	return p, ok
}

// SessionStatus is the locally recorded state of a payment session. Transitions
// are driven entirely by the gateway; this service only observes and reacts.

type SessionStatus string

const (
	SessionStatusPending        SessionStatus = "pending"
	SessionStatusRequiresAction SessionStatus = "requires_action"
	SessionStatusAuthorized     SessionStatus = "authorized"
	SessionStatusCaptured       SessionStatus = "captured"
	SessionStatusError          SessionStatus = "error"
)

// IntentStatus is the gateway-side status of a payment intent. The gateway is
// authoritative; local session status is only a cached view.

type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresCapture       IntentStatus = "requires_capture"
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusFailed                IntentStatus = "failed"
)

// SessionDataIntentIDKey is the key under which a session's data blob carries
// the external payment-intent id.
const SessionDataIntentIDKey = "payment_intent_id"

// PaymentSession is one payment attempt tracked against a cart's payment
// collection. Data is an opaque provider blob; for Stripe it holds the
// payment-intent id and client secret.
type PaymentSession struct {
	ID         string            `json:"id"`
	ProviderID string            `json:"provider_id"`
	Status     SessionStatus     `json:"status"`
	Data       map[string]string `json:"data,omitempty"`
}

// IntentID returns the external payment-intent id recorded in the session
// data blob, or "" when the session was never initialized at the gateway.
func (s PaymentSession) IntentID() string {
	if s.Data == nil {
		return ""
	}
	return s.Data[SessionDataIntentIDKey]
}

// PaymentCollection groups the payment sessions of a cart. Created lazily on
// the first payment attempt; its metadata is merged (never replaced) on every
// reconciliation pass.
type PaymentCollection struct {
	ID              string            `json:"id"`
	CurrencyCode    string            `json:"currency_code"`
	Amount          int64             `json:"amount"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	PaymentSessions []PaymentSession  `json:"payment_sessions,omitempty"`
}

// PaymentIntent mirrors the gateway's record of a single payment attempt.
// It is never persisted locally; the metadata map carries the originating
// cart id and/or order id for correlation.
type PaymentIntent struct {
	ID             string            `json:"id"`
	Status         IntentStatus      `json:"status"`
	Amount         int64             `json:"amount"`
	AmountReceived int64             `json:"amount_received"`
	Currency       string            `json:"currency"`
	Description    string            `json:"description,omitempty"`
	ReceiptEmail   string            `json:"receipt_email,omitempty"`
	ClientSecret   string            `json:"client_secret,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// EventTypeIntentSucceeded is the only gateway event type that triggers order
// materialization; every other type is acknowledged without action.
const EventTypeIntentSucceeded = "payment_intent.succeeded"

// PaymentEvent is an entry from the gateway's own event log, used by the
// pull-based fallback when push delivery is suspected lost.
type PaymentEvent struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Intent    PaymentIntent `json:"intent"`
	CreatedAt time.Time     `json:"created_at"`
}
