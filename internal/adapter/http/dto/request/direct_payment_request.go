package request

import (
	"strings"

	"checkout_service/internal/domain/entities"
)

type AddressRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

func (r *AddressRequest) ToEntity() *entities.Address {
	if r == nil {
		return nil
	}
	return &entities.Address{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Address1:    r.Address1,
		Address2:    r.Address2,
		City:        r.City,
		Province:    r.Province,
		PostalCode:  r.PostalCode,
		CountryCode: strings.ToLower(r.CountryCode),
		Phone:       r.Phone,
	}
}

// DirectPaymentCreateRequest is the payload for the direct Stripe payment
// bypass route.
type DirectPaymentCreateRequest struct {
	CartID          string          `json:"cart_id" binding:"required"`
	CustomerEmail   string          `json:"customer_email"`
	ShippingAddress *AddressRequest `json:"shipping_address"`
	BillingAddress  *AddressRequest `json:"billing_address"`
}
