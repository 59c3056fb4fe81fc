package interfaces

import (
	"context"
	"errors"

	"checkout_service/internal/domain/entities"
)

// ErrOrderConflict is returned by CreateIdempotent when an order already
// exists for the same correlation key. The storage layer enforces the
// uniqueness; callers treat this error as the idempotency signal and fetch
// the existing order instead of retrying.
var ErrOrderConflict = errors.New("order already exists for correlation key")

// IOrderRepository abstracts order persistence.
//
// Lookups return a zero-value Order (empty ID), not an error, when nothing
// matches. CreateIdempotent must guard on the order's correlation key with a
// storage-level unique constraint, not a preceding read.

type IOrderRepository interface {
	CreateIdempotent(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByIntentID(ctx context.Context, intentID string) (entities.Order, error)
	GetByCartID(ctx context.Context, cartID string) (entities.Order, error)
	UpdateMetadata(ctx context.Context, id string, metadata map[string]any) (entities.Order, error)
}
