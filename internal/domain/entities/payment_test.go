package entities

import "testing"

func TestNormalizeProvider(t *testing.T) {
	cases := []struct {
		raw  string
		want PaymentProvider
		ok   bool
	}{
		{"stripe", ProviderStripe, true},
		{"pp_stripe_stripe", ProviderStripe, true},
		{"pp_paypal", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeProvider(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeProvider(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCartStripeSession(t *testing.T) {
	t.Run("no payment collection", func(t *testing.T) {
		if _, ok := (Cart{ID: "cart-1"}).StripeSession(); ok {
			t.Fatalf("expected no session")
		}
	})

	t.Run("both provider id formats resolve", func(t *testing.T) {
		for _, providerID := range []string{"stripe", "pp_stripe_stripe"} {
			cart := Cart{
				ID: "cart-1",
				PaymentCollection: &PaymentCollection{
					PaymentSessions: []PaymentSession{
						{ID: "payses_other", ProviderID: "pp_paypal"},
						{ID: "payses_stripe", ProviderID: providerID, Data: map[string]string{SessionDataIntentIDKey: "pi_1"}},
					},
				},
			}
			s, ok := cart.StripeSession()
			if !ok || s.ID != "payses_stripe" {
				t.Fatalf("provider %q: expected stripe session, got %+v ok=%v", providerID, s, ok)
			}
			if s.IntentID() != "pi_1" {
				t.Fatalf("provider %q: unexpected intent id %q", providerID, s.IntentID())
			}
		}
	})
}

func TestOrderCorrelationKey(t *testing.T) {
	if got := (Order{PaymentIntentID: "pi_1", CartID: "cart-1"}).CorrelationKey(); got != "pi_1" {
		t.Fatalf("expected intent id to win, got %q", got)
	}
	if got := (Order{CartID: "cart-1"}).CorrelationKey(); got != "cart-1" {
		t.Fatalf("expected cart id fallback, got %q", got)
	}
}

func TestOrderPaymentCaptured(t *testing.T) {
	if (Order{}).PaymentCaptured() {
		t.Fatalf("nil metadata should not report captured")
	}
	if (Order{Metadata: map[string]any{MetaPaymentCaptured: "true"}}).PaymentCaptured() {
		t.Fatalf("non-bool metadata should not report captured")
	}
	if !(Order{Metadata: map[string]any{MetaPaymentCaptured: true}}).PaymentCaptured() {
		t.Fatalf("expected captured")
	}
}
