// Package ports defines the contracts between the domain layer and
// infrastructure adapters, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ClaimForCourier atomically binds a courier to an unassigned order with a
	// single conditional update (courier column must still be empty). When the
	// predicate matches no row because another courier holds the order, it
	// returns a conflict error. This is the storage-level check-and-set that
	// makes concurrent assignment race-safe.
	ClaimForCourier(ctx context.Context, orderID, courierID kernel.UUID, at time.Time) error

	// GetSettlementPending retrieves delivered orders whose settlement has not
	// completed yet. Used by the settlement resume job.
	GetSettlementPending(ctx context.Context) ([]*order.Order, error)

	// GetActiveByCourier retrieves the courier's assigned, not yet completed orders.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)
}
