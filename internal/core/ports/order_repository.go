// Package ports defines the contracts between the freight core and its
// infrastructure: repositories, the unit of work, the remote exchange rate
// source and the billing event publisher.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Items and boxes are written once on Add; later updates only write back the
// evaluated rule result.
type OrderRepository interface {
	// Add stores a new order with its items and boxes.
	// Returns errs.IllegalStateTransitionError when the id is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items, boxes, account and the last
	// applied rule result, if any.
	// Returns errs.ObjectNotFoundError when no order has the given id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists the effective shipping method and rule result of an
	// existing order.
	Update(ctx context.Context, aggregate *order.Order) error
}
