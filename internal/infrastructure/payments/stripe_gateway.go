package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

var ErrMissingStripeAPIKey = errors.New("missing STRIPE_API_KEY")

// Config is the process-wide gateway configuration, initialized once at
// startup and read-only thereafter.
type Config struct {
	APIKey        string
	WebhookSecret string
}

// StripeGateway implements interfaces.IPaymentGateway against the Stripe API.
// Each instance carries its own API client; nothing is stored in package
// globals.
type StripeGateway struct {
	sc            *client.API
	webhookSecret string
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(cfg Config) (*StripeGateway, error) {
	if cfg.APIKey == "" {
		log.Printf("[payment][gateway] missing STRIPE_API_KEY")
		return nil, ErrMissingStripeAPIKey
	}
	sc := client.New(cfg.APIKey, nil)
	log.Printf("[payment][gateway] Stripe client initialized")
	return &StripeGateway{sc: sc, webhookSecret: cfg.WebhookSecret}, nil
}

func (g *StripeGateway) CreateIntent(ctx context.Context, params interfaces.CreateIntentParams) (entities.PaymentIntent, error) {
	log.Printf("[payment][gateway] create intent start amount=%d currency=%s", params.Amount, params.Currency)

	piParams := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(strings.ToLower(params.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if params.Description != "" {
		piParams.Description = stripe.String(params.Description)
	}
	if params.ReceiptEmail != "" {
		piParams.ReceiptEmail = stripe.String(params.ReceiptEmail)
	}
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}
	if params.ShippingAddress != nil {
		piParams.Shipping = &stripe.ShippingDetailsParams{
			Name: stripe.String(params.ShippingName),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(params.ShippingAddress.Address1),
				Line2:      stripe.String(params.ShippingAddress.Address2),
				City:       stripe.String(params.ShippingAddress.City),
				State:      stripe.String(params.ShippingAddress.Province),
				PostalCode: stripe.String(params.ShippingAddress.PostalCode),
				Country:    stripe.String(strings.ToUpper(params.ShippingAddress.CountryCode)),
			},
		}
	}

	pi, err := g.sc.PaymentIntents.New(piParams)
	if err != nil {
		log.Printf("[payment][gateway] create intent failed err=%v", err)
		return entities.PaymentIntent{}, mapStripeError(err)
	}
	log.Printf("[payment][gateway] create intent success intent_id=%s status=%s", pi.ID, pi.Status)
	return fromStripeIntent(pi), nil
}

// GetIntent reads ground truth from Stripe, bypassing any locally cached
// session status.
func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Get(intentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return entities.PaymentIntent{}, mapStripeError(err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) CaptureIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error) {
	log.Printf("[payment][gateway] capture start intent_id=%s", intentID)
	pi, err := g.sc.PaymentIntents.Capture(intentID, &stripe.PaymentIntentCaptureParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		log.Printf("[payment][gateway] capture failed intent_id=%s err=%v", intentID, err)
		return entities.PaymentIntent{}, mapStripeError(err)
	}
	log.Printf("[payment][gateway] capture success intent_id=%s status=%s", pi.ID, pi.Status)
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) GetEvent(ctx context.Context, eventID string) (entities.PaymentEvent, error) {
	ev, err := g.sc.Events.Get(eventID, &stripe.EventParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return entities.PaymentEvent{}, mapStripeError(err)
	}
	return fromStripeEvent(ev)
}

func (g *StripeGateway) ListSucceededEvents(ctx context.Context, limit int, since time.Time) ([]entities.PaymentEvent, error) {
	listParams := &stripe.EventListParams{
		ListParams: stripe.ListParams{
			Context: ctx,
			Limit:   stripe.Int64(int64(limit)),
		},
		Types: []*string{stripe.String(entities.EventTypeIntentSucceeded)},
	}
	if !since.IsZero() {
		listParams.CreatedRange = &stripe.RangeQueryParams{GreaterThanOrEqual: since.Unix()}
	}

	var events []entities.PaymentEvent
	iter := g.sc.Events.List(listParams)
	for iter.Next() {
		ev, err := fromStripeEvent(iter.Event())
		if err != nil {
			log.Printf("[payment][gateway] skipping undecodable event err=%v", err)
			continue
		}
		events = append(events, ev)
	}
	if err := iter.Err(); err != nil {
		return nil, mapStripeError(err)
	}
	log.Printf("[payment][gateway] listed %d recent succeeded events", len(events))
	return events, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (entities.PaymentEvent, error) {
	if len(payload) == 0 || signature == "" || g.webhookSecret == "" {
		return entities.PaymentEvent{}, interfaces.ErrInvalidWebhookSignature
	}
	// IgnoreAPIVersionMismatch: the CLI and older dashboard configs may emit
	// a different API version than the SDK pins; the signature check itself
	// is unaffected.
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		log.Printf("[payment][gateway] webhook signature verification failed err=%v", err)
		return entities.PaymentEvent{}, interfaces.ErrInvalidWebhookSignature
	}
	return fromStripeEvent(&ev)
}

func fromStripeIntent(pi *stripe.PaymentIntent) entities.PaymentIntent {
	if pi == nil {
		return entities.PaymentIntent{}
	}
	return entities.PaymentIntent{
		ID:             pi.ID,
		Status:         entities.IntentStatus(pi.Status),
		Amount:         pi.Amount,
		AmountReceived: pi.AmountReceived,
		Currency:       string(pi.Currency),
		Description:    pi.Description,
		ReceiptEmail:   pi.ReceiptEmail,
		ClientSecret:   pi.ClientSecret,
		Metadata:       pi.Metadata,
		CreatedAt:      time.Unix(pi.Created, 0),
	}
}

func fromStripeEvent(ev *stripe.Event) (entities.PaymentEvent, error) {
	out := entities.PaymentEvent{
		ID:        ev.ID,
		Type:      string(ev.Type),
		CreatedAt: time.Unix(ev.Created, 0),
	}
	if ev.Data != nil && len(ev.Data.Raw) > 0 && strings.HasPrefix(string(ev.Type), "payment_intent.") {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return entities.PaymentEvent{}, fmt.Errorf("decode event %s payload: %w", ev.ID, err)
		}
		out.Intent = fromStripeIntent(&pi)
	}
	return out, nil
}

// mapStripeError converts SDK errors into the typed signals the usecases
// discriminate on, keyed by Stripe's stable error codes.
func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return err
	}
	switch stripeErr.Code {
	case stripe.ErrorCodeResourceMissing:
		return fmt.Errorf("%w: %s", interfaces.ErrIntentNotFound, stripeErr.Msg)
	case "payment_intent_unexpected_state":
		// Capture is only attempted on requires_capture intents, so an
		// unexpected-state rejection means the gateway already settled it.
		return fmt.Errorf("%w: %s", interfaces.ErrIntentAlreadyCaptured, stripeErr.Msg)
	}
	return err
}
