package interfaces

import (
	"context"
	"errors"
	"time"

	"checkout_service/internal/domain/entities"
)

var (
	// ErrIntentNotFound is returned when the gateway has no record of the
	// requested payment intent or event.
	ErrIntentNotFound = errors.New("payment intent not found at gateway")

	// ErrIntentAlreadyCaptured is the typed signal for a capture attempt
	// against an intent the gateway already settled. Derived from the
	// gateway's stable error code, never from message text.
	ErrIntentAlreadyCaptured = errors.New("payment intent already captured")

	// ErrInvalidWebhookSignature is returned when a webhook payload fails
	// signature verification.
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
)

// CreateIntentParams carries everything needed to open a payment intent at
// the gateway. Amount is in integer cents; Metadata should always include the
// originating cart id and/or order id for correlation.
type CreateIntentParams struct {
	Amount          int64
	Currency        string
	Description     string
	ReceiptEmail    string
	Metadata        map[string]string
	ShippingName    string
	ShippingAddress *entities.Address
}

// IPaymentGateway abstracts the external payment processor (Stripe).
//
// GetIntent bypasses any local cache: it is the ground-truth read used by the
// reconciler before capture decisions. ListSucceededEvents reads the
// gateway's own event log, newest first, for the pull-based webhook fallback.

type IPaymentGateway interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (entities.PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error)
	CaptureIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error)
	GetEvent(ctx context.Context, eventID string) (entities.PaymentEvent, error)
	ListSucceededEvents(ctx context.Context, limit int, since time.Time) ([]entities.PaymentEvent, error)
	VerifyWebhook(payload []byte, signature string) (entities.PaymentEvent, error)
}
