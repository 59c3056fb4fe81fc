package interfaces

import (
	"context"

	"checkout_service/internal/domain/entities"
)

// ICartRepository abstracts read access to carts. Carts are owned by the
// storefront; the checkout flow only reads them and merges payment-collection
// metadata.
//
// GetSnapshot must fetch exactly the fields the reconciliation pass needs
// (id, email, currency_code, total, payment_collection with its sessions) and
// return a zero-value Cart, not an error, when the cart does not exist.
// ListItems is a separate call because line items are only needed at
// materialization time.

type ICartRepository interface {
	GetSnapshot(ctx context.Context, cartID string) (entities.Cart, error)
	ListItems(ctx context.Context, cartID string) ([]entities.CartItem, error)
	MergePaymentCollectionMetadata(ctx context.Context, cartID string, metadata map[string]string) error
}
