package usecase

import (
	"context"
	"errors"
	"log"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"
)

var ErrNoPaymentSession = errors.New("no payment session found")

// ReconcileResult is the annotated session state the completion flow uses to
// pick a code path.
type ReconcileResult struct {
	Session entities.PaymentSession
	// IntentID is the external payment-intent id, "" when the session was
	// never initialized at the gateway.
	IntentID string
	// GatewayStatus is the intent status as reported by the gateway, "" when
	// ground truth could not be read.
	GatewayStatus entities.IntentStatus
	// SkipCapture is set when the gateway already settled the payment and a
	// local capture would double-capture.
	SkipCapture bool
}

// PaymentReconciler decides, for a cart's active payment session, whether the
// locally recorded status matches the gateway's authoritative state before
// capture is attempted. The gateway read is a consistency check only: any
// retrieval failure is logged and the normal completion path proceeds.
type PaymentReconciler struct {
	gateway interfaces.IPaymentGateway
}

func NewPaymentReconciler(gateway interfaces.IPaymentGateway) *PaymentReconciler {
	return &PaymentReconciler{gateway: gateway}
}

func (r *PaymentReconciler) Reconcile(ctx context.Context, cart entities.Cart) (ReconcileResult, error) {
	session, ok := cart.StripeSession()
	if !ok {
		log.Printf("[checkout][reconciler] no payment session cart_id=%s", cart.ID)
		return ReconcileResult{}, ErrNoPaymentSession
	}

	res := ReconcileResult{Session: session, IntentID: session.IntentID()}
	if res.IntentID == "" {
		log.Printf("[checkout][reconciler] session has no intent id cart_id=%s session_id=%s", cart.ID, session.ID)
		return res, nil
	}

	if r.gateway == nil {
		return res, errors.New("payment gateway not configured")
	}

	intent, err := r.gateway.GetIntent(ctx, res.IntentID)
	if err != nil {
		// Non-fatal: the retrieval was only a consistency check, not the
		// capture itself.
		log.Printf("[checkout][reconciler] intent retrieval failed cart_id=%s intent_id=%s err=%v", cart.ID, res.IntentID, err)
		return res, nil
	}

	res.GatewayStatus = intent.Status
	switch intent.Status {
	case entities.IntentStatusSucceeded:
		// Gateway already settled; treat local status as authorized and skip
		// capture to avoid a double-capture rejection.
		res.SkipCapture = true
		log.Printf("[checkout][reconciler] gateway reports succeeded, skipping capture cart_id=%s intent_id=%s", cart.ID, res.IntentID)
	case entities.IntentStatusRequiresCapture:
		log.Printf("[checkout][reconciler] gateway reports requires_capture cart_id=%s intent_id=%s", cart.ID, res.IntentID)
	default:
		log.Printf("[checkout][reconciler] gateway status=%s cart_id=%s intent_id=%s", intent.Status, cart.ID, res.IntentID)
	}
	return res, nil
}
