package entities

// Address is a cart shipping or billing address. Optional on the cart; when
// present it is forwarded to the gateway on intent creation.
type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2,omitempty"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone,omitempty"`
}

// CartItem is one line of a cart. UnitPrice is in integer cents.
type CartItem struct {
	Title     string `json:"title"`
	ProductID string `json:"product_id,omitempty"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Cart is the pre-order state owned by the commerce backend. This service
// reads it and never mutates anything but the payment collection metadata.
//
// Storage model (DynamoDB):
//   - PK: id
//   - payment_collection is a nested attribute
//
// Monetary representation: Total is in integer cents.
type Cart struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	CurrencyCode      string             `json:"currency_code"`
	Total             int64              `json:"total"`
	ShippingAddress   *Address           `json:"shipping_address,omitempty"`
	BillingAddress    *Address           `json:"billing_address,omitempty"`
	Items             []CartItem         `json:"items,omitempty"`
	PaymentCollection *PaymentCollection `json:"payment_collection,omitempty"`
}

// StripeSession returns the cart's payment session whose provider normalizes
// to Stripe, or false when the cart has no usable session.
func (c Cart) StripeSession() (PaymentSession, bool) {
	if c.PaymentCollection == nil {
		return PaymentSession{}, false
	}
	for _, s := range c.PaymentCollection.PaymentSessions {
		if p, ok := NormalizeProvider(s.ProviderID); ok && p == ProviderStripe {
			return s, true
		}
	}
	return PaymentSession{}, false
}
